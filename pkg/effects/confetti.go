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
	// MaxConfetti 同时存在的纸屑上限
	MaxConfetti = 400
	// ConfettiLifetime 每片纸屑的存活时间（秒），约 200 帧
	ConfettiLifetime = 200.0 / 60

	// 以下速度按 800px 短边标定，实际随画布缩放
	confettiSpeed = 45 * 60.0 // 初速度 px/s
	confettiFall  = 3 * 60.0  // 下落速度 px/s
	confettiDecay = 0.9       // 每帧速度衰减
	confettiBase  = 800.0

	confettiW = 10
	confettiH = 6
)

// 纸屑配色
var confettiColors = []color.RGBA{
	{R: 0x26, G: 0xcc, B: 0xff, A: 0xff},
	{R: 0xa2, G: 0x5a, B: 0xfd, A: 0xff},
	{R: 0xff, G: 0x5e, B: 0x7e, A: 0xff},
	{R: 0x88, G: 0xff, B: 0x5a, A: 0xff},
	{R: 0xfc, G: 0xff, B: 0x42, A: 0xff},
	{R: 0xff, G: 0xa6, B: 0x2d, A: 0xff},
	{R: 0xff, G: 0x36, B: 0xff, A: 0xff},
}

// Piece 一片纸屑
type Piece struct {
	X, Y  float64
	Angle float64 // 飞行方向，弧度，π/2 为正上方
	Speed float64
	Spin  float64 // 翻转相位
	Tilt  float64
	Color color.RGBA
	Age   float64
}

// Alpha 当前不透明度，随寿命线性淡出
func (p Piece) Alpha() float64 {
	return math.Max(0, 1-p.Age/ConfettiLifetime)
}

// Confetti 礼花纸屑
//
// 每次 Burst 从画布上的某点向上喷出一簇纸屑，速度逐帧衰减，同时匀速下落。
type Confetti struct {
	rng    *rand.Rand
	pieces []Piece

	width, height float64
}

// NewConfetti 创建纸屑效果，rng 为 nil 时使用随机种子
func NewConfetti(rng *rand.Rand) *Confetti {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Confetti{rng: rng}
}

// Resize 更新画布尺寸
func (c *Confetti) Resize(width, height int) {
	c.width, c.height = float64(width), float64(height)
}

// Pieces 当前存活的纸屑
func (c *Confetti) Pieces() []Piece {
	return c.pieces
}

// Len 当前存活数量
func (c *Confetti) Len() int {
	return len(c.pieces)
}

func (c *Confetti) scale() float64 {
	return math.Max(math.Min(c.width, c.height)/confettiBase, 0.4)
}

// Burst 喷出 count 片纸屑
//
// spread 为扇形张角（度），以正上方为中心；originX、originY 是画布宽高的比例。
func (c *Confetti) Burst(count int, spread, originX, originY float64) {
	if c.width <= 0 || c.height <= 0 {
		return
	}
	k := c.scale()
	x, y := c.width*originX, c.height*originY
	half := spread * math.Pi / 360
	for i := 0; i < count && len(c.pieces) < MaxConfetti; i++ {
		c.pieces = append(c.pieces, Piece{
			X:     x,
			Y:     y,
			Angle: math.Pi/2 + utils.Lerp(-half, half, c.rng.Float64()),
			Speed: confettiSpeed * k * utils.Lerp(0.5, 1, c.rng.Float64()),
			Spin:  c.rng.Float64() * 2 * math.Pi,
			Tilt:  c.rng.Float64() * math.Pi,
			Color: confettiColors[c.rng.IntN(len(confettiColors))],
		})
	}
}

// Update 推进 dt 秒，移除过期纸屑
func (c *Confetti) Update(dt float64) {
	if len(c.pieces) == 0 {
		return
	}
	fall := confettiFall * c.scale() * dt
	decay := math.Pow(confettiDecay, dt*60)

	live := c.pieces[:0]
	for _, p := range c.pieces {
		p.Age += dt
		if p.Age >= ConfettiLifetime {
			continue
		}
		p.X += math.Cos(p.Angle) * p.Speed * dt
		p.Y += fall - math.Sin(p.Angle)*p.Speed*dt
		p.Speed *= decay
		p.Spin += 6 * dt
		live = append(live, p)
	}
	c.pieces = live
}

// Draw 绘制所有纸屑
func (c *Confetti) Draw(screen *ebiten.Image, src SpriteSource) {
	if len(c.pieces) == 0 || src == nil {
		return
	}
	img := src.Sprite("effects:confetti", func() image.Image {
		return sprites.RoundedPlate(confettiW, confettiH, 1, color.White, color.Transparent, 0)
	})
	if img == nil {
		return
	}

	k := c.scale()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	for _, p := range c.pieces {
		// 翻转时宽度在 20% 到 100% 之间摆动
		flip := utils.Lerp(0.2, 1, math.Abs(math.Cos(p.Spin)))
		op.GeoM.Reset()
		op.GeoM.Translate(-confettiW/2, -confettiH/2)
		op.GeoM.Scale(k*flip, k)
		op.GeoM.Rotate(p.Tilt + p.Spin*0.5)
		op.GeoM.Translate(p.X, p.Y)
		op.ColorScale.Reset()
		op.ColorScale.ScaleWithColor(p.Color)
		op.ColorScale.ScaleAlpha(float32(p.Alpha()))
		screen.DrawImage(img, op)
	}
}
