package scenes

import (
	"fmt"
	"image"
	"log"

	"github.com/decker502/heartcollage/pkg/effects"
	"github.com/decker502/heartcollage/pkg/game"
	"github.com/decker502/heartcollage/pkg/sprites"
	"github.com/decker502/heartcollage/pkg/ui"
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// ProposalScene 表白页面："是" 按钮和会躲开的 "不" 按钮
type ProposalScene struct {
	deps *Deps
	flow *game.ProposalFlow

	yes    *ui.Button
	no     *ui.EvasiveButton
	taunt  string
	hearts *effects.Field

	width, height int
	scale         float64
	panel         ui.Rect
	questionLines []string
}

var (
	_ game.Lifecycle      = (*ProposalScene)(nil)
	_ game.Resizable      = (*ProposalScene)(nil)
	_ game.PointerHandler = (*ProposalScene)(nil)
)

// NewProposalScene 创建表白场景
func NewProposalScene(d *Deps) *ProposalScene {
	cfg := d.Config.Proposal
	return &ProposalScene{
		deps:   d,
		flow:   game.NewProposalFlow(cfg.Taunts, false),
		yes:    ui.NewButton(cfg.Yes, ui.Rect{}, ui.PrimaryStyle),
		no:     ui.NewEvasiveButton(cfg.No, ui.Rect{}, ui.Rect{}, ui.SecondaryStyle, d.rng()),
		hearts: effects.NewField(d.rng()),
		scale:  1,
	}
}

// OnEnter 实现 game.Lifecycle
func (s *ProposalScene) OnEnter() {
	log.Printf("[ProposalScene] 进入表白页面")
}

// OnExit 实现 game.Lifecycle
func (s *ProposalScene) OnExit() {
	s.deps.setCursor(ebiten.CursorShapeDefault)
}

// Resize 实现 game.Resizable：重新排版并把按钮放回初始位置
func (s *ProposalScene) Resize(width, height int) {
	s.deps.resized(width, height)
	s.width, s.height = width, height
	s.scale = layoutScale(width, height)
	s.hearts.Resize(width, height)

	k := s.scale
	panelW := min(float64(width)-32*k, 520*k)
	panelH := 300 * k
	s.panel = ui.Centered(float64(width)/2, float64(height)/2, panelW, panelH)

	face := s.deps.Resources.Font(26 * k)
	s.questionLines = utils.WrapText(s.deps.Config.Proposal.Question, face, panelW-64*k)

	btnW, btnH := 130*k, 52*k
	cx, cy := float64(width)/2, s.panel.Y+panelH*0.68
	s.yes.Rect = ui.Centered(cx-btnW/2-12*k, cy, btnW, btnH)
	s.no.Rect = ui.Centered(cx+btnW/2+12*k, cy, btnW, btnH)
	s.no.Bounds = ui.Rect{X: 8 * k, Y: 8 * k, W: float64(width) - 16*k, H: float64(height) - 16*k}
}

// Flow 表白状态（测试用）
func (s *ProposalScene) Flow() *game.ProposalFlow {
	return s.flow
}

// HandlePointer 实现 game.PointerHandler
func (s *ProposalScene) HandlePointer(ev utils.PointerEvent) {
	if s.flow.Accepted() {
		return
	}

	if s.no.Update(ev) {
		s.taunt = s.flow.Decline()
		// 躲开之后 "是" 按钮不应被同一次按下触发
		return
	}
	if s.yes.Update(ev) {
		s.accept()
	}
}

func (s *ProposalScene) accept() {
	if !s.flow.Accept() {
		return
	}
	log.Printf("[ProposalScene] 对方答应了（躲开了 %d 次）", s.flow.Dodges())
	if err := s.deps.Progress.SetProposalAccepted(true); err != nil {
		log.Printf("[ProposalScene] Warning: 保存进度失败: %v", err)
	}
	s.deps.Navigator.Goto(game.SceneCollage)
}

// Update 实现 game.Scene
func (s *ProposalScene) Update(deltaTime float64) {
	s.hearts.Update(deltaTime)

	if s.yes.Hovered() {
		s.deps.setCursor(ebiten.CursorShapePointer)
	} else {
		s.deps.setCursor(ebiten.CursorShapeDefault)
	}
}

// Draw 实现 game.Scene
func (s *ProposalScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	rm := s.deps.Resources
	s.hearts.Draw(screen, rm)

	k := s.scale
	drawPanel(screen, rm, s.panel, panelColor, noBorder, 28*k)

	cx := float64(s.width) / 2
	ui.DrawLines(screen, s.questionLines, rm.Font(26*k), cx, s.panel.Y+40*k, textColor)

	if s.taunt != "" {
		ui.DrawText(screen, s.taunt, rm.Font(16*k), cx, s.panel.Y+s.panel.H-36*k, mutedColor)
	}

	s.yes.Draw(screen, rm, rm.Font(20*k))
	s.no.Draw(screen, rm, rm.Font(20*k))

	if s.flow.ShowHint() {
		s.drawHint(screen)
	}
}

// drawHint "不" 按钮右上角的问号徽标
func (s *ProposalScene) drawHint(screen *ebiten.Image) {
	k := s.scale
	size := 22 * k
	r := ui.Centered(s.no.Rect.X+s.no.Rect.W-2*k, s.no.Rect.Y+2*k, size, size)
	img := s.deps.Resources.Sprite(fmt.Sprintf("hint:%.0f", size), func() image.Image {
		return sprites.RoundedPlate(int(size), int(size), size/2, spinnerColor, spinnerColor, 0)
	})
	ui.DrawImageAt(screen, img, r, 1)
	cx, cy := r.Center()
	ui.DrawText(screen, "?", s.deps.Resources.Font(13*k), cx, cy, ui.PrimaryStyle.Text)
}
