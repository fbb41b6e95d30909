// Package sprites 运行时用 gogpu/gg 栅格化的矢量图形
//
// 生成的都是 image.Image，由 ResourceManager 转换为 ebiten.Image 并缓存。
package sprites

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// 爱心轮廓（100x100 单位空间）：起点为顶部凹口，逆时针绕一圈
var heartPath = [][6]float64{
	{50, 27, 45, 15, 25, 15},
	{0, 15, 0, 42.5, 0, 42.5},
	{0, 60, 20, 77, 50, 95},
	{80, 77, 100, 60, 100, 42.5},
	{100, 42.5, 100, 15, 75, 15},
	{60, 15, 50, 27, 50, 30},
}

// traceHeart 在 (x, y) 处画一个边长为 size 的爱心路径
func traceHeart(dc *gg.Context, x, y, size float64) {
	k := size / 100
	dc.MoveTo(x+50*k, y+30*k)
	for _, c := range heartPath {
		dc.CubicTo(x+c[0]*k, y+c[1]*k, x+c[2]*k, y+c[3]*k, x+c[4]*k, y+c[5]*k)
	}
	dc.ClosePath()
}

// Heart 纯色爱心
func Heart(size int, fill color.Color) image.Image {
	size = max(size, 1)
	dc := gg.NewContext(size, size)
	defer dc.Close()

	dc.SetColor(fill)
	traceHeart(dc, 0, 0, float64(size))
	dc.Fill()
	return dc.Image()
}

// LayeredHeart 带内层高光的爱心（飘动的装饰爱心）
func LayeredHeart(size int, outer, inner color.Color) image.Image {
	size = max(size, 1)
	s := float64(size)
	dc := gg.NewContext(size, size)
	defer dc.Close()

	dc.SetColor(outer)
	traceHeart(dc, 0, 0, s)
	dc.Fill()

	dc.SetColor(inner)
	traceHeart(dc, s*0.3, s*0.28, s*0.4)
	dc.Fill()
	return dc.Image()
}

// RoundedPlate 圆角按钮底板，borderWidth <= 0 时不描边
func RoundedPlate(w, h int, radius float64, fill, border color.Color, borderWidth float64) image.Image {
	w, h = max(w, 1), max(h, 1)
	dc := gg.NewContext(w, h)
	defer dc.Close()

	inset := max(borderWidth, 0) / 2
	fw, fh := float64(w)-2*inset, float64(h)-2*inset
	radius = min(radius, fw/2, fh/2)

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(inset, inset, fw, fh, radius)
	dc.Fill()

	if borderWidth > 0 {
		dc.SetColor(border)
		dc.SetLineWidth(borderWidth)
		dc.DrawRoundedRectangle(inset, inset, fw, fh, radius)
		dc.Stroke()
	}
	return dc.Image()
}

// 备用面板配色
var (
	panelTop    = gg.Hex("#ffe4ec")
	panelBottom = gg.Hex("#ffc2d1")
	panelHeart  = gg.Hex("#ff4d6d")
	panelAccent = gg.Hex("#ff8fa3")
)

// FallbackPanel 渲染管线不可用时显示的静态装饰面板
//
// 渐变圆角底板，中间一个大爱心，四周一圈小爱心。
func FallbackPanel(w, h int) image.Image {
	w, h = max(w, 1), max(h, 1)
	fw, fh := float64(w), float64(h)
	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.SetFillBrush(gg.NewLinearGradientBrush(0, 0, 0, fh).
		AddColorStop(0, panelTop).
		AddColorStop(1, panelBottom))
	dc.DrawRoundedRectangle(0, 0, fw, fh, min(fw, fh)*0.08)
	dc.Fill()

	side := min(fw, fh)
	big := side * 0.45
	dc.SetColor(panelHeart.Color())
	traceHeart(dc, (fw-big)/2, (fh-big)/2, big)
	dc.Fill()

	small := side * 0.1
	dc.SetColor(panelAccent.Color())
	for _, p := range [][2]float64{{0.15, 0.15}, {0.85, 0.15}, {0.15, 0.85}, {0.85, 0.85}, {0.5, 0.12}, {0.5, 0.88}} {
		traceHeart(dc, p[0]*fw-small/2, p[1]*fh-small/2, small)
		dc.Fill()
	}
	return dc.Image()
}
