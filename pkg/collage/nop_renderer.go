package collage

import "github.com/hajimehoshi/ebiten/v2"

// NopRenderer 不做任何绘制的渲染器，记录调用情况
//
// 用于测试，也可以在无头环境中驱动动画器。
type NopRenderer struct {
	// InitErr 不为 nil 时 Initialize 返回此错误
	InitErr error

	Initialized int
	Disposed    int
	Frames      int
	MaxCards    int // 单帧最多绘制的卡片数

	Textures  []Texture
	LastFrame Frame
}

// Initialize 实现 Renderer
func (r *NopRenderer) Initialize(textures []Texture) error {
	if r.InitErr != nil {
		return r.InitErr
	}
	r.Initialized++
	r.Textures = append([]Texture(nil), textures...)
	return nil
}

// DrawFrame 实现 Renderer
func (r *NopRenderer) DrawFrame(_ *ebiten.Image, frame Frame) error {
	r.Frames++
	r.MaxCards = max(r.MaxCards, len(frame.Cards))
	r.LastFrame = frame
	r.LastFrame.Cards = append([]CardFrame(nil), frame.Cards...)
	return nil
}

// Dispose 实现 Renderer
func (r *NopRenderer) Dispose() {
	r.Disposed++
}
