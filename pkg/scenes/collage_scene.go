package scenes

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/decker502/heartcollage/pkg/collage"
	"github.com/decker502/heartcollage/pkg/effects"
	"github.com/decker502/heartcollage/pkg/game"
	"github.com/decker502/heartcollage/pkg/photos"
	"github.com/decker502/heartcollage/pkg/render"
	"github.com/decker502/heartcollage/pkg/sprites"
	"github.com/decker502/heartcollage/pkg/ui"
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 放大照片的最大边长
const modalPhotoSide = 1024

// CollageScene 答应之后的爱心拼贴画页面
//
// OnEnter 挂载动画器，OnExit 卸载。首帧之前显示等待遮罩，
// 渲染管线不可用时显示静态备用面板。
type CollageScene struct {
	deps     *Deps
	animator *collage.Animator
	hearts   *effects.Field
	play     *ui.Button

	ctx    context.Context
	cancel context.CancelFunc

	// 由加载 goroutine 写入，Update 中取出
	loaded chan []photos.Photo
	byID   map[string]photos.Photo

	ready   bool
	failed  bool
	elapsed float64
	modal   string // 正在放大的照片 ID

	width, height int
	scale         float64
}

var (
	_ game.Lifecycle      = (*CollageScene)(nil)
	_ game.Resizable      = (*CollageScene)(nil)
	_ game.PointerHandler = (*CollageScene)(nil)
)

// NewCollageScene 创建拼贴画场景
func NewCollageScene(d *Deps) *CollageScene {
	newRenderer := d.NewRenderer
	if newRenderer == nil {
		newRenderer = func() collage.Renderer { return render.NewKageRenderer(render.Options{}) }
	}
	return &CollageScene{
		deps:     d,
		animator: collage.NewAnimator(newRenderer(), d.Config.Collage.Options(d.Seed)),
		hearts:   effects.NewField(d.rng()),
		play:     ui.NewButton(d.Config.Quiz.Labels.Play, ui.Rect{}, ui.GoldStyle),
		byID:     make(map[string]photos.Photo),
		scale:    1,
	}
}

// Animator 动画器（测试用）
func (s *CollageScene) Animator() *collage.Animator {
	return s.animator
}

// OnEnter 实现 game.Lifecycle：挂载动画器
func (s *CollageScene) OnEnter() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.loaded = make(chan []photos.Photo, 1)
	s.ready, s.failed, s.modal = false, false, ""

	loaded := s.loaded
	provider := photos.ProviderFunc(func(ctx context.Context) ([]photos.Photo, error) {
		list, err := s.deps.Photos.Load(ctx)
		if err == nil {
			loaded <- list
		}
		return list, err
	})
	s.animator.Mount(s.ctx, provider)
	if s.width > 0 && s.height > 0 {
		s.animator.Resize(s.width, s.height)
	}
}

// OnExit 实现 game.Lifecycle：卸载动画器并释放 GPU 资源
func (s *CollageScene) OnExit() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.animator.Unmount()
	s.deps.setCursor(ebiten.CursorShapeDefault)
}

// Resize 实现 game.Resizable
func (s *CollageScene) Resize(width, height int) {
	s.deps.resized(width, height)
	s.width, s.height = width, height
	s.scale = layoutScale(width, height)
	s.animator.Resize(width, height)
	s.hearts.Resize(width, height)

	k := s.scale
	s.play.Rect = ui.Centered(float64(width)/2, float64(height)-48*k, min(360*k, float64(width)-32*k), 52*k)
}

// Ready 首帧是否已经绘制
func (s *CollageScene) Ready() bool {
	return s.ready
}

// Failed 渲染管线是否不可用
func (s *CollageScene) Failed() bool {
	return s.failed
}

// Modal 正在放大的照片 ID，空表示没有
func (s *CollageScene) Modal() string {
	return s.modal
}

// HandlePointer 实现 game.PointerHandler
func (s *CollageScene) HandlePointer(ev utils.PointerEvent) {
	if s.modal != "" {
		// 任意点击关闭放大图
		if ev.Kind == utils.PointerUp {
			s.modal = ""
		}
		return
	}

	if s.ready || s.failed {
		if s.play.Update(ev) {
			s.deps.Navigator.Goto(game.SceneQuiz)
			return
		}
		if ev.Kind != utils.PointerLeave && s.play.Rect.Contains(ev.X, ev.Y) {
			return
		}
	}
	s.animator.HandlePointer(ev)
}

// Update 实现 game.Scene
func (s *CollageScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	s.hearts.Update(deltaTime)

	select {
	case list := <-s.loaded:
		for _, p := range list {
			s.byID[p.ID] = p
		}
	default:
	}

	s.animator.Update()
	s.drainNotifications()

	if s.animator.Hovered() != collage.NoCard || s.play.Hovered() {
		s.deps.setCursor(ebiten.CursorShapePointer)
	} else {
		s.deps.setCursor(ebiten.CursorShapeDefault)
	}
}

func (s *CollageScene) drainNotifications() {
	select {
	case <-s.animator.Ready():
		s.ready = true
		log.Printf("[CollageScene] 拼贴画首帧完成")
	default:
	}
	select {
	case err := <-s.animator.Failed():
		s.failed = true
		log.Printf("[CollageScene] 渲染管线不可用，显示备用面板: %v", err)
	default:
	}
	select {
	case id := <-s.animator.Tapped():
		if _, ok := s.byID[id]; ok {
			s.modal = id
		}
	default:
	}
}

// Draw 实现 game.Scene
func (s *CollageScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	rm := s.deps.Resources
	s.hearts.Draw(screen, rm)

	if s.failed {
		s.drawFallback(screen)
	} else {
		s.animator.Draw(screen)
	}

	if !s.ready && !s.failed {
		s.drawWaiting(screen)
		return
	}

	s.drawHeader(screen)
	s.play.Draw(screen, rm, rm.Font(18*s.scale))
	s.drawPrizeBadge(screen)

	if s.modal != "" {
		s.drawModal(screen)
	}
}

func (s *CollageScene) drawWaiting(screen *ebiten.Image) {
	fillScreen(screen, overlayColor)
	k := s.scale
	cx, cy := float64(s.width)/2, float64(s.height)/2
	drawSpinner(screen, s.deps.Resources, cx, cy-24*k, 26*k, s.elapsed)
	ui.DrawText(screen, s.deps.Config.Proposal.Waiting, s.deps.Resources.Font(16*k), cx, cy+30*k, mutedColor)
}

func (s *CollageScene) drawHeader(screen *ebiten.Image) {
	rm := s.deps.Resources
	cfg := s.deps.Config.Proposal
	k := s.scale
	cx := float64(s.width) / 2

	ui.DrawText(screen, cfg.Accepted, rm.Font(30*k), cx, 40*k, roseColor)
	ui.DrawText(screen, cfg.Subtitle, rm.Font(20*k), cx, 78*k, mutedColor)
	ui.DrawText(screen, cfg.Caption, rm.Font(14*k), cx, s.play.Rect.Y-20*k, mutedColor)
}

// drawPrizeBadge 右上角显示已确认的奖品
func (s *CollageScene) drawPrizeBadge(screen *ebiten.Image) {
	id := s.deps.Progress.GetProgress().Quiz.ConfirmedPrize
	if id == "" {
		return
	}
	name := id
	for _, p := range s.deps.Config.Quiz.Prizes {
		if p.ID == id {
			name = p.Name
		}
	}

	k := s.scale
	label := s.deps.Config.Quiz.Labels.YourPrize + " " + name
	face := s.deps.Resources.Font(14 * k)
	w, _ := textSize(label, face)
	r := ui.Rect{X: float64(s.width) - w - 40*k, Y: 12 * k, W: w + 28*k, H: 34 * k}
	drawPanel(screen, s.deps.Resources, r, amberLight, amberColor, 17*k)
	cx, cy := r.Center()
	ui.DrawText(screen, label, face, cx, cy, amberColor)
}

func (s *CollageScene) drawFallback(screen *ebiten.Image) {
	side := int(float64(min(s.width, s.height)) * 0.7)
	if side <= 0 {
		return
	}
	img := s.deps.Resources.Sprite(fmt.Sprintf("fallback:%d", side), func() image.Image {
		return sprites.FallbackPanel(side, side)
	})
	ui.DrawImageAt(screen, img, ui.Centered(float64(s.width)/2, float64(s.height)/2, float64(side), float64(side)), 1)
}

func (s *CollageScene) drawModal(screen *ebiten.Image) {
	p, ok := s.byID[s.modal]
	if !ok || p.Image == nil {
		return
	}
	fillScreen(screen, modalColor)

	img := s.deps.Resources.Sprite("photo:"+p.ID, func() image.Image {
		return render.Downscale(p.Image, modalPhotoSide)
	})
	maxW, maxH := float64(s.width)*0.9, float64(s.height)*0.85
	w, h := maxW, maxW/p.Aspect()
	if h > maxH {
		w, h = maxH*p.Aspect(), maxH
	}
	ui.DrawImageAt(screen, img, ui.Centered(float64(s.width)/2, float64(s.height)/2, w, h), 1)
}
