// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端、浏览器和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/heartcollage/pkg/collage"
	"github.com/decker502/heartcollage/pkg/config"
	"github.com/decker502/heartcollage/pkg/game"
	"github.com/decker502/heartcollage/pkg/photos"
	"github.com/decker502/heartcollage/pkg/render"
	"github.com/decker502/heartcollage/pkg/scenes"
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名（浏览器中为 localStorage 前缀）
const AppName = "heartcollage"

// 默认窗口尺寸（逻辑像素）
const (
	WindowWidth  = 960
	WindowHeight = 720
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空则使用内嵌的 data/applet.yaml
	ConfigPath string
	// Seed 拼贴动画的随机种子，0 表示随机
	Seed uint64
	// Start 指定启动场景，为空则根据进度决定
	Start game.SceneID
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	poller       *utils.PointerPoller
	photos       *photos.Cache
	progress     *game.ProgressManager
	config       *config.AppletConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

var (
	_ ebiten.Game              = (*App)(nil)
	_ ebiten.LayoutFer         = (*App)(nil)
	_ ebiten.FinalScreenDrawer = (*App)(nil)
)

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	appletConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[Config] %d 道题目, %d 个奖品, 最多 %d 张卡片",
		len(appletConfig.Quiz.Questions), len(appletConfig.Quiz.Prizes), appletConfig.Collage.MaxCards)

	progressManager := game.NewProgressManager(openStorage())

	provider, err := newPhotoProvider(appletConfig.Photos)
	if err != nil {
		return nil, fmt.Errorf("照片来源初始化失败: %w", err)
	}
	photoCache := photos.NewCache(provider)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	deps := &scenes.Deps{
		Config:    appletConfig,
		Resources: game.NewResourceManager(),
		Progress:  progressManager,
		Navigator: sceneManager,
		Photos:    photoCache,
		NewRenderer: func() collage.Renderer {
			return render.NewKageRenderer(render.Options{})
		},
		Seed: cfg.Seed,
	}
	sceneManager.SetSceneFactory(scenes.NewSceneFactory(deps))

	start := cfg.Start
	switch start {
	case "", game.SceneProposal, game.SceneCollage, game.SceneQuiz:
	default:
		return nil, fmt.Errorf("未知的启动场景: %q", start)
	}
	if start == "" {
		start = game.SceneProposal
		if progressManager.GetProgress().ProposalAccepted {
			start = game.SceneCollage
		}
	}
	log.Printf("[App] 启动场景: %s", start)
	sceneManager.Goto(start)

	return &App{
		sceneManager: sceneManager,
		poller:       utils.NewPointerPoller(),
		photos:       photoCache,
		progress:     progressManager,
		config:       appletConfig,
		verbose:      cfg.Verbose,
	}, nil
}

func loadConfig(path string) (*config.AppletConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载配置文件: %s", path)
		return config.Load(path)
	}
	return config.LoadEmbedded(config.DefaultConfigPath)
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级为仅内存进度）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(AppName); err != nil {
		log.Printf("[App] Warning: 存储目录不可用: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata 初始化失败: %v（进度不会保存）", err)
		return nil
	}
	if path := utils.StoragePath(AppName); path != "" {
		log.Printf("[App] 进度目录: %s", path)
	}
	return manager
}

// Title 窗口标题
func (a *App) Title() string {
	return a.config.Title
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if !utils.IsMobile() {
		a.updateWindow()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.HandlePointer(a.poller.Poll())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 使用线性滤波把离屏画面绘制到屏幕
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.White)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回绘制表面尺寸
//
// 表面跟随窗口（或浏览器容器）大小，按设备像素比放大，像素比上限为 2。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.layout(float64(outsideWidth), float64(outsideHeight))
}

// LayoutF 实现 ebiten.LayoutFer，返回整数像素的表面尺寸
func (a *App) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := a.layout(outsideWidth, outsideHeight)
	return float64(w), float64(h)
}

func (a *App) layout(outsideWidth, outsideHeight float64) (int, int) {
	w, h := collage.SurfaceSize(outsideWidth, outsideHeight, deviceScale())
	a.poller.SetBounds(w, h)
	a.sceneManager.Resize(w, h)
	return w, h
}

// deviceScale 当前显示器的设备像素比，游戏循环启动前没有显示器时为 1
func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// Close 退出当前场景并取消照片加载（窗口关闭时调用）
func (a *App) Close() {
	a.sceneManager.Close()
	a.photos.Close()
	log.Printf("[App] 已关闭")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
