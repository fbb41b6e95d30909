package scenes

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/decker502/heartcollage/pkg/collage"
	"github.com/decker502/heartcollage/pkg/config"
	"github.com/decker502/heartcollage/pkg/game"
	"github.com/decker502/heartcollage/pkg/photos"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Deps 场景共享的依赖，由 App 创建并注入
type Deps struct {
	Config    *config.AppletConfig
	Resources *game.ResourceManager
	Progress  *game.ProgressManager
	Navigator game.Navigator

	// Photos 照片来源（通常是 App 持有的 photos.Cache）
	Photos photos.Provider
	// NewRenderer 每次进入拼贴场景时创建新的渲染器
	NewRenderer func() collage.Renderer
	// Rand 随机源，nil 时使用随机种子
	Rand *rand.Rand
	// Seed 拼贴动画起点的随机种子，0 表示随机
	Seed uint64
	// SetCursor 设置光标形状，nil 时使用 ebiten.SetCursorShape
	SetCursor func(ebiten.CursorShapeType)

	// 生成图片对应的表面尺寸
	spriteW, spriteH int
}

func (d *Deps) rng() *rand.Rand {
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return d.Rand
}

func (d *Deps) setCursor(shape ebiten.CursorShapeType) {
	if d.SetCursor != nil {
		d.SetCursor(shape)
		return
	}
	ebiten.SetCursorShape(shape)
}

// resized 表面尺寸变化时释放按旧尺寸生成的图片和字号
//
// 场景切换时尺寸不变，缓存保留。
func (d *Deps) resized(width, height int) {
	if width == d.spriteW && height == d.spriteH {
		return
	}
	if d.spriteW != 0 && d.Resources != nil {
		d.Resources.Release()
	}
	d.spriteW, d.spriteH = width, height
}

// NewSceneFactory 返回按 ID 创建场景的工厂函数
func NewSceneFactory(d *Deps) game.SceneFactory {
	return func(id game.SceneID) game.Scene {
		switch id {
		case game.SceneProposal:
			return NewProposalScene(d)
		case game.SceneCollage:
			return NewCollageScene(d)
		case game.SceneQuiz:
			return NewQuizScene(d)
		default:
			return nil
		}
	}
}

// 调色板
var (
	backgroundColor = color.RGBA{R: 0xff, G: 0xf1, B: 0xf2, A: 0xff} // rose-50
	panelColor      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}
	overlayColor    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xf2}
	modalColor      = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xb3}
	textColor       = color.RGBA{R: 0x27, G: 0x27, B: 0x2a, A: 0xff} // zinc-800
	mutedColor      = color.RGBA{R: 0x71, G: 0x71, B: 0x7a, A: 0xff} // zinc-500
	roseColor       = color.RGBA{R: 0xe1, G: 0x1d, B: 0x48, A: 0xff} // rose-600
	spinnerColor    = color.RGBA{R: 0xfd, G: 0xa4, B: 0xaf, A: 0xff} // rose-300
	amberColor      = color.RGBA{R: 0xd9, G: 0x77, B: 0x06, A: 0xff} // amber-600
	amberLight      = color.RGBA{R: 0xff, G: 0xfb, B: 0xeb, A: 0xff} // amber-50
	trackColor      = color.RGBA{R: 0xe4, G: 0xe4, B: 0xe7, A: 0xff} // zinc-200
	barColor        = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff} // amber-500
	urgentColor     = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff} // red-600
	correctColor    = color.RGBA{R: 0xdc, G: 0xfc, B: 0xe7, A: 0xff} // green-100
	wrongColor      = color.RGBA{R: 0xfe, G: 0xe2, B: 0xe2, A: 0xff} // red-100
	noBorder        = color.RGBA{}

	certificateBorder = color.RGBA{R: 0xd9, G: 0x77, B: 0x06, A: 0xcc}
)

// layoutScale 以 640 像素的较短边为基准的界面缩放
func layoutScale(width, height int) float64 {
	s := float64(min(width, height)) / 640
	return math.Max(0.6, math.Min(s, 2.5))
}
