package scenes

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/decker502/heartcollage/pkg/sprites"
	"github.com/decker502/heartcollage/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const spinnerDots = 8

// drawPanel 绘制圆角面板
func drawPanel(screen *ebiten.Image, src ui.SpriteSource, r ui.Rect, fill, border color.RGBA, radius float64) {
	w, h := int(r.W+0.5), int(r.H+0.5)
	if w <= 0 || h <= 0 {
		return
	}
	borderWidth := 0.0
	if border.A > 0 {
		borderWidth = 2
	}
	key := fmt.Sprintf("panel:%dx%d:%.0f:%v:%v", w, h, radius, fill, border)
	img := src.Sprite(key, func() image.Image {
		return sprites.RoundedPlate(w, h, radius, fill, border, borderWidth)
	})
	ui.DrawImageAt(screen, img, r, 1)
}

// fillScreen 用半透明颜色覆盖整个屏幕
func fillScreen(screen *ebiten.Image, clr color.RGBA) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), clr, false)
}

// drawSpinner 绘制一圈明暗轮转的小爱心
func drawSpinner(screen *ebiten.Image, src ui.SpriteSource, cx, cy, radius, t float64) {
	size := int(radius * 0.55)
	heart := src.Sprite(fmt.Sprintf("spinner:%d", size), func() image.Image {
		return sprites.Heart(size, spinnerColor)
	})
	head := int(math.Floor(t*spinnerDots)) % spinnerDots
	for i := 0; i < spinnerDots; i++ {
		angle := float64(i)/spinnerDots*2*math.Pi - math.Pi/2
		x := cx + math.Cos(angle)*radius - float64(size)/2
		y := cy + math.Sin(angle)*radius - float64(size)/2
		// 越靠近 head 越不透明
		lag := (head - i + spinnerDots) % spinnerDots
		alpha := float32(1 - float64(lag)/spinnerDots*0.85)
		ui.DrawImageAt(screen, heart, ui.Rect{X: x, Y: y, W: float64(size), H: float64(size)}, alpha)
	}
}

// textSize 单行文字的宽高
func textSize(s string, face *text.GoTextFace) (float64, float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}

// drawTextLeft 左对齐、垂直居中
func drawTextLeft(screen *ebiten.Image, s string, face *text.GoTextFace, x, cy float64, clr color.Color) {
	drawAligned(screen, s, face, x, cy, text.AlignStart, clr)
}

// drawTextRight 右对齐、垂直居中
func drawTextRight(screen *ebiten.Image, s string, face *text.GoTextFace, x, cy float64, clr color.Color) {
	drawAligned(screen, s, face, x, cy, text.AlignEnd, clr)
}

func drawAligned(screen *ebiten.Image, s string, face *text.GoTextFace, x, cy float64, align text.Align, clr color.Color) {
	if s == "" || face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, cy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
