// Package ui 简单的即时模式控件：按钮、躲避按钮、文字
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// UIState represents the current state of a UI element (e.g., button).
type UIState int

const (
	// UINormal indicates the UI element is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the mouse cursor is hovering over the UI element.
	UIHovered
	// UIClicked indicates the UI element is being pressed.
	UIClicked
	// UIDisabled indicates the UI element is disabled and cannot be interacted with.
	UIDisabled
)

// Rect 屏幕矩形（逻辑像素）
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center 矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Centered 以 (cx, cy) 为中心、w*h 的矩形
func Centered(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// SpriteSource 生成图片缓存（game.ResourceManager 实现）
type SpriteSource interface {
	Sprite(key string, build func() image.Image) *ebiten.Image
}

// DrawText 以 (cx, cy) 为中心绘制单行文字
func DrawText(screen *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, clr color.Color) {
	if s == "" || face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// DrawLines 以 cx 为中心、从 top 开始逐行绘制，返回最后一行之后的 y
func DrawLines(screen *ebiten.Image, lines []string, face *text.GoTextFace, cx, top float64, clr color.Color) float64 {
	if face == nil {
		return top
	}
	lineHeight := face.Size * 1.35
	y := top + lineHeight/2
	for _, line := range lines {
		DrawText(screen, line, face, cx, y, clr)
		y += lineHeight
	}
	return y - lineHeight/2
}

// DrawImageAt 把图片缩放绘制到矩形内
func DrawImageAt(screen, img *ebiten.Image, r Rect, alpha float32) {
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
