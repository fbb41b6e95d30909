// Package effects 装饰性效果：背景飘动的爱心、礼花纸屑
package effects

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/decker502/heartcollage/pkg/sprites"
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// MaxHearts 同时存在的爱心上限
	MaxHearts = 180
	// HeartLifetime 每个爱心的存活时间（秒）
	HeartLifetime = 5.0
	// SpawnInterval 生成间隔（秒）
	SpawnInterval = 0.12

	spawnMargin   = 40.0
	minDistance   = 80.0
	distanceRange = 220.0
	minScale      = 0.15
	scaleRange    = 0.4

	burstCount    = 12
	burstInterval = 0.08

	fadeIn  = 0.15
	fadeOut = 0.3

	// 爱心贴图的边长（缩放前）
	heartSpriteSize = 116
)

var (
	heartOuter = color.RGBA{R: 0xfd, G: 0xa4, B: 0xaf, A: 0xff}
	heartInner = color.RGBA{R: 0xfe, G: 0xcd, B: 0xd3, A: 0xff}
)

// Heart 一个飘动的爱心
type Heart struct {
	X, Y   float64 // 起点
	DX, DY float64 // 整个生命周期的位移
	Scale  float64
	Age    float64
}

// Progress 生命周期进度 [0,1]
func (h Heart) Progress() float64 {
	return math.Min(h.Age/HeartLifetime, 1)
}

// Position 当前位置
func (h Heart) Position() (float64, float64) {
	p := utils.EaseOutQuad(h.Progress())
	return h.X + h.DX*p, h.Y + h.DY*p
}

// Alpha 当前不透明度：淡入、保持、淡出
func (h Heart) Alpha() float64 {
	p := h.Progress()
	switch {
	case p < fadeIn:
		return p / fadeIn
	case p > 1-fadeOut:
		return math.Max(0, (1-p)/fadeOut)
	default:
		return 1
	}
}

// SpriteSource 生成图片缓存
type SpriteSource interface {
	Sprite(key string, build func() image.Image) *ebiten.Image
}

// Field 飘动爱心的粒子场
//
// 启动时先以 80ms 间隔连续生成 12 个，之后每 120ms 生成一个。
type Field struct {
	rng    *rand.Rand
	hearts []Heart

	width, height float64
	spawnTimer    float64
	burstLeft     int
	burstTimer    float64
}

// NewField 创建粒子场，rng 为 nil 时使用随机种子
func NewField(rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{
		rng:       rng,
		hearts:    make([]Heart, 0, MaxHearts),
		burstLeft: burstCount,
	}
}

// Resize 更新生成范围
func (f *Field) Resize(width, height int) {
	f.width, f.height = float64(width), float64(height)
}

// Hearts 当前存活的爱心
func (f *Field) Hearts() []Heart {
	return f.hearts
}

// Len 当前存活数量
func (f *Field) Len() int {
	return len(f.hearts)
}

// Update 推进 dt 秒
func (f *Field) Update(dt float64) {
	live := f.hearts[:0]
	for _, h := range f.hearts {
		h.Age += dt
		if h.Age < HeartLifetime {
			live = append(live, h)
		}
	}
	f.hearts = live

	if f.width <= 0 || f.height <= 0 {
		return
	}

	if f.burstLeft > 0 {
		f.burstTimer -= dt
		for f.burstLeft > 0 && f.burstTimer <= 0 {
			f.spawn()
			f.burstLeft--
			f.burstTimer += burstInterval
		}
	}

	f.spawnTimer += dt
	for f.spawnTimer >= SpawnInterval {
		f.spawnTimer -= SpawnInterval
		f.spawn()
	}
}

func (f *Field) spawn() {
	if len(f.hearts) >= MaxHearts {
		return
	}
	angle := f.rng.Float64() * 2 * math.Pi
	distance := minDistance + f.rng.Float64()*distanceRange
	f.hearts = append(f.hearts, Heart{
		X:     f.rng.Float64()*(f.width+spawnMargin*2) - spawnMargin,
		Y:     f.rng.Float64()*(f.height+spawnMargin*2) - spawnMargin,
		DX:    math.Cos(angle) * distance,
		DY:    math.Sin(angle) * distance,
		Scale: minScale + f.rng.Float64()*scaleRange,
	})
}

// Draw 绘制所有爱心
func (f *Field) Draw(screen *ebiten.Image, src SpriteSource) {
	if len(f.hearts) == 0 || src == nil {
		return
	}
	img := src.Sprite("effects:floating-heart", func() image.Image {
		return sprites.LayeredHeart(heartSpriteSize, heartOuter, heartInner)
	})
	if img == nil {
		return
	}

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	for _, h := range f.hearts {
		x, y := h.Position()
		op.GeoM.Reset()
		op.GeoM.Scale(h.Scale, h.Scale)
		op.GeoM.Translate(x, y)
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(h.Alpha()))
		screen.DrawImage(img, op)
	}
}
