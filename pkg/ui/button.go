package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/decker502/heartcollage/pkg/sprites"
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Style 按钮外观
type Style struct {
	Fill    color.RGBA
	Hover   color.RGBA
	Pressed color.RGBA
	Border  color.RGBA
	Text    color.RGBA
	Radius  float64 // <= 0 时为全圆角
}

// 预设样式
var (
	PrimaryStyle = Style{
		Fill:    color.RGBA{R: 0xf4, G: 0x3f, B: 0x5e, A: 0xff},
		Hover:   color.RGBA{R: 0xe1, G: 0x1d, B: 0x48, A: 0xff},
		Pressed: color.RGBA{R: 0xbe, G: 0x12, B: 0x3c, A: 0xff},
		Text:    color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	SecondaryStyle = Style{
		Fill:    color.RGBA{R: 0xf4, G: 0xf4, B: 0xf5, A: 0xff},
		Hover:   color.RGBA{R: 0xe4, G: 0xe4, B: 0xe7, A: 0xff},
		Pressed: color.RGBA{R: 0xd4, G: 0xd4, B: 0xd8, A: 0xff},
		Border:  color.RGBA{R: 0xd4, G: 0xd4, B: 0xd8, A: 0xff},
		Text:    color.RGBA{R: 0x52, G: 0x52, B: 0x5b, A: 0xff},
	}
	GoldStyle = Style{
		Fill:    color.RGBA{R: 0xd9, G: 0x77, B: 0x06, A: 0xff},
		Hover:   color.RGBA{R: 0xb4, G: 0x53, B: 0x09, A: 0xff},
		Pressed: color.RGBA{R: 0x92, G: 0x40, B: 0x0e, A: 0xff},
		Text:    color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	OptionStyle = Style{
		Fill:    color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Hover:   color.RGBA{R: 0xff, G: 0xfb, B: 0xeb, A: 0xff},
		Pressed: color.RGBA{R: 0xfe, G: 0xf3, B: 0xc7, A: 0xff},
		Border:  color.RGBA{R: 0xe4, G: 0xe4, B: 0xe7, A: 0xff},
		Text:    color.RGBA{R: 0x27, G: 0x27, B: 0x2a, A: 0xff},
		Radius:  12,
	}
)

// Button 按钮
//
// 按下和释放都在按钮内才算点击；鼠标悬停只影响外观。
type Button struct {
	Rect    Rect
	Label   string
	Style   Style
	State   UIState
	Enabled bool

	pressed bool
	pressID int
}

// NewButton 创建按钮
func NewButton(label string, rect Rect, style Style) *Button {
	return &Button{Rect: rect, Label: label, Style: style, Enabled: true}
}

// Update 处理一个指针事件，返回是否完成一次点击
func (b *Button) Update(ev utils.PointerEvent) bool {
	if !b.Enabled {
		b.State = UIDisabled
		b.pressed = false
		return false
	}

	inside := b.Rect.Contains(ev.X, ev.Y)
	switch ev.Kind {
	case utils.PointerMove:
		if ev.IsTouch() {
			if b.pressed && ev.ID == b.pressID && !inside {
				b.State = UINormal
			}
			return false
		}
		switch {
		case b.pressed && inside:
			b.State = UIClicked
		case inside:
			b.State = UIHovered
		default:
			b.State = UINormal
		}
	case utils.PointerDown:
		if inside && !b.pressed {
			b.pressed = true
			b.pressID = ev.ID
			b.State = UIClicked
		}
	case utils.PointerLeave:
		b.State = UINormal
	case utils.PointerUp:
		if !b.pressed || ev.ID != b.pressID {
			return false
		}
		b.pressed = false
		b.State = UINormal
		if inside && !ev.IsTouch() {
			b.State = UIHovered
		}
		return inside
	}
	return false
}

// Hovered 鼠标是否悬停在按钮上（用于设置光标形状）
func (b *Button) Hovered() bool {
	return b.Enabled && (b.State == UIHovered || b.State == UIClicked)
}

// Reset 清除按下状态
func (b *Button) Reset() {
	b.pressed = false
	b.State = UINormal
}

func (b *Button) fillColor() color.RGBA {
	switch b.State {
	case UIHovered:
		return b.Style.Hover
	case UIClicked:
		return b.Style.Pressed
	default:
		return b.Style.Fill
	}
}

// plate 返回当前状态的底板图片
func (b *Button) plate(src SpriteSource) *ebiten.Image {
	w, h := int(b.Rect.W+0.5), int(b.Rect.H+0.5)
	fill := b.fillColor()
	radius := b.Style.Radius
	if radius <= 0 {
		radius = b.Rect.H / 2
	}
	borderWidth := 0.0
	if b.Style.Border.A > 0 {
		borderWidth = 2
	}
	key := fmt.Sprintf("plate:%dx%d:%.0f:%v:%v", w, h, radius, fill, b.Style.Border)
	return src.Sprite(key, func() image.Image {
		return sprites.RoundedPlate(w, h, radius, fill, b.Style.Border, borderWidth)
	})
}

// Draw 绘制按钮
func (b *Button) Draw(screen *ebiten.Image, src SpriteSource, face *text.GoTextFace) {
	alpha := float32(1)
	if !b.Enabled {
		alpha = 0.6
	}
	DrawImageAt(screen, b.plate(src), b.Rect, alpha)
	cx, cy := b.Rect.Center()
	DrawText(screen, b.Label, face, cx, cy, b.Style.Text)
}
