package collage

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/heartcollage/pkg/photos"
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// DefaultCardSize 卡片半边长（相对表面较短边的一半）
	DefaultCardSize = 0.09
	// DefaultHoverScale 悬停卡片的放大倍数
	DefaultHoverScale = 1.25

	tappedBuffer = 4
)

// State 动画器状态
type State int

const (
	// StateIdle 未挂载
	StateIdle State = iota
	// StateLoading 等待照片加载
	StateLoading
	// StateRunning 渲染循环运行中
	StateRunning
	// StateFailed 渲染管线不可用，调用方应显示静态备用面板
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options 动画器参数，零值字段使用默认值
type Options struct {
	Duration   time.Duration
	HeartScale float64
	CardSize   float64
	HoverScale float64
	MaxCards   int

	// Seed 起点随机种子，0 表示使用当前时间
	Seed uint64
	// Clock 时间来源，nil 表示 time.Now
	Clock func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.HeartScale <= 0 {
		o.HeartScale = DefaultHeartScale
	}
	if o.CardSize <= 0 {
		o.CardSize = DefaultCardSize
	}
	if o.HoverScale <= 0 {
		o.HoverScale = DefaultHoverScale
	}
	if o.MaxCards <= 0 || o.MaxCards > HardCap {
		o.MaxCards = HardCap
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

type loadResult struct {
	generation uint64
	photos     []photos.Photo
	err        error
}

// Animator 爱心拼贴动画器
//
// 所有方法都必须在游戏循环（Update/Draw）所在的 goroutine 上调用。
// 唯一的后台 goroutine 是每次挂载的照片加载，它只通过带缓冲的 channel 回传结果。
//
// 通知：
//   - Ready(): 每次挂载后第一次成功绘制时触发一次
//   - Tapped(): 每次有效点击触发一次，携带照片引用
//   - Failed(): 渲染管线不可用时触发一次
//
// 每次 Mount 都会创建新的通知 channel，调用方需要在 Mount 之后重新获取。
type Animator struct {
	renderer Renderer
	opts     Options
	rng      *rand.Rand

	state      State
	generation uint64
	cancel     context.CancelFunc
	results    chan loadResult

	deck          Deck
	current       []Vec2
	frameCards    []CardFrame
	hitCenters    []Vec2
	timeline      *Timeline
	interaction   *Interaction
	surface       Surface
	pipelineReady bool

	ready       chan struct{}
	readyFired  bool
	tapped      chan string
	failed      chan error
	failedFired bool
}

// NewAnimator 创建动画器
func NewAnimator(renderer Renderer, opts Options) *Animator {
	opts = opts.withDefaults()
	return &Animator{
		renderer:    renderer,
		opts:        opts,
		rng:         rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		timeline:    NewTimeline(opts.Duration),
		interaction: NewInteraction(),
		ready:       make(chan struct{}, 1),
		tapped:      make(chan string, tappedBuffer),
		failed:      make(chan error, 1),
	}
}

// State 当前状态
func (a *Animator) State() State {
	return a.state
}

// Ready 首帧通知
func (a *Animator) Ready() <-chan struct{} {
	return a.ready
}

// Tapped 卡片点击通知（照片引用）
func (a *Animator) Tapped() <-chan string {
	return a.tapped
}

// Failed 渲染管线失败通知
func (a *Animator) Failed() <-chan error {
	return a.failed
}

// Mount 挂载：重置时钟并开始异步加载照片
//
// 已挂载时先卸载。ctx 取消等同于卸载前的加载取消。
func (a *Animator) Mount(ctx context.Context, provider photos.Provider) {
	a.Unmount()

	a.generation++
	gen := a.generation
	loadCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.ready = make(chan struct{}, 1)
	a.tapped = make(chan string, tappedBuffer)
	a.failed = make(chan error, 1)
	a.readyFired = false
	a.failedFired = false
	a.timeline.Reset()
	a.interaction.Reset()

	results := make(chan loadResult, 1)
	a.results = results
	a.state = StateLoading

	go func() {
		list, err := provider.Load(loadCtx)
		results <- loadResult{generation: gen, photos: list, err: err}
	}()
	log.Printf("[Collage] 挂载 #%d，开始加载照片", gen)
}

// Unmount 卸载：取消加载、释放渲染资源。可重复调用。
func (a *Animator) Unmount() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.pipelineReady {
		a.renderer.Dispose()
		a.pipelineReady = false
	}
	if a.state != StateIdle {
		log.Printf("[Collage] 卸载 #%d", a.generation)
	}

	// 让仍在路上的加载结果失效
	a.generation++
	a.results = nil
	a.deck = Deck{}
	a.current = nil
	a.frameCards = nil
	a.interaction.Reset()
	a.state = StateIdle
}

// Resize 更新绘制表面尺寸
func (a *Animator) Resize(width, height int) {
	a.surface = Surface{Width: width, Height: height}
}

// Surface 当前绘制表面
func (a *Animator) Surface() Surface {
	return a.surface
}

// Update 每个 tick 调用：检查照片加载是否完成
func (a *Animator) Update() {
	if a.state != StateLoading || a.results == nil {
		return
	}

	select {
	case res := <-a.results:
		if res.generation != a.generation {
			return
		}
		if res.err != nil {
			log.Printf("[Collage] 照片加载中断: %v（使用备用色块）", res.err)
			res.photos = nil
		}
		a.results = nil
		a.startPipeline(res.photos)
	default:
	}
}

func (a *Animator) startPipeline(list []photos.Photo) {
	a.deck = BuildDeck(list, DeckOptions{HeartScale: a.opts.HeartScale, MaxCards: a.opts.MaxCards}, a.rng)

	if err := a.renderer.Initialize(a.deck.Textures); err != nil {
		log.Printf("[Collage] 渲染管线初始化失败: %v", err)
		a.renderer.Dispose()
		a.fail(err)
		return
	}
	a.pipelineReady = true

	a.current = make([]Vec2, len(a.deck.Cards))
	for i, c := range a.deck.Cards {
		a.current[i] = c.Start
	}
	a.frameCards = make([]CardFrame, len(a.deck.Cards))
	a.state = StateRunning
	log.Printf("[Collage] 渲染管线就绪: %d 张卡片, %d 个纹理", len(a.deck.Cards), len(a.deck.Textures))
}

func (a *Animator) fail(err error) {
	a.state = StateFailed
	if !a.failedFired {
		a.failedFired = true
		a.failed <- err
	}
}

// Draw 渲染一帧（ebiten Draw 中调用）
func (a *Animator) Draw(dst *ebiten.Image) {
	if a.state != StateRunning {
		return
	}

	now := a.opts.Clock()
	a.timeline.Start(now)
	eased := a.timeline.Eased(now)

	hovered := a.interaction.Hovered()
	for i, c := range a.deck.Cards {
		a.current[i] = c.Start.Lerp(c.Target, eased)
		scale := 1.0
		if i == hovered {
			scale = a.opts.HoverScale
		}
		a.frameCards[i] = CardFrame{
			Center:    a.current[i],
			Texture:   c.Texture,
			Aspect:    c.Aspect,
			Scale:     scale,
			Highlight: i == hovered,
		}
	}

	frame := Frame{
		Surface:  a.surface,
		CardSize: a.opts.CardSize,
		Cards:    a.frameCards,
		Hovered:  hovered,
	}
	if err := a.renderer.DrawFrame(dst, frame); err != nil {
		log.Printf("[Collage] 绘制失败: %v", err)
		a.renderer.Dispose()
		a.pipelineReady = false
		a.fail(err)
		return
	}

	if !a.readyFired {
		a.readyFired = true
		a.ready <- struct{}{}
	}
}

// HandlePointer 处理指针事件（屏幕像素坐标）
func (a *Animator) HandlePointer(ev utils.PointerEvent) {
	if a.state != StateRunning || !a.surface.Valid() {
		return
	}

	a.hitCenters = a.hitCenters[:0]
	for _, c := range a.current {
		a.hitCenters = append(a.hitCenters, a.surface.SquareFromNDC(c))
	}
	hit := HitTest(a.hitCenters, a.surface.ToSquare(ev.X, ev.Y), a.opts.CardSize)
	idx, ok := a.interaction.Handle(ev, hit)
	if !ok {
		return
	}

	id := a.deck.Cards[idx].ImageID
	if id == "" {
		// 备用色块没有可放大的照片
		return
	}
	select {
	case a.tapped <- id:
	default:
		log.Printf("[Collage] 点击通知未被消费，丢弃: %s", id)
	}
}

// Hovered 当前悬停的卡片下标，NoCard 表示无
func (a *Animator) Hovered() int {
	if a.state != StateRunning {
		return NoCard
	}
	return a.interaction.Hovered()
}

// Animating 卡片是否仍在飞行中
func (a *Animator) Animating() bool {
	return a.state == StateRunning && !a.timeline.Done(a.opts.Clock())
}

// Cards 当前卡片（只读副本）
func (a *Animator) Cards() []Card {
	return append([]Card(nil), a.deck.Cards...)
}

// Centers 当前帧的卡片中心（只读副本）
func (a *Animator) Centers() []Vec2 {
	return append([]Vec2(nil), a.current...)
}
