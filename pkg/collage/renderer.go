package collage

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrNoAcceleration 绘制表面无法提供加速渲染上下文
	ErrNoAcceleration = errors.New("collage: accelerated rendering unavailable")
	// ErrPipelineBuild 着色器/程序构建失败，处理方式与 ErrNoAcceleration 相同
	ErrPipelineBuild = errors.New("collage: failed to build render pipeline")
)

// CardFrame 一张卡片在当前帧的绘制参数
type CardFrame struct {
	Center    Vec2    // 当前中心（NDC）
	Texture   int     // 纹理下标
	Aspect    float64 // 图片宽高比，用于居中裁剪
	Scale     float64 // 1.0，悬停时为 HoverScale
	Highlight bool    // 是否为悬停卡片（边框染色）
}

// Frame 一帧的全部绘制数据
type Frame struct {
	Surface  Surface
	CardSize float64 // 卡片半边长，单位为表面较短边的一半
	Cards    []CardFrame
	Hovered  int
}

// Renderer 拼贴画渲染管线
//
// 调用顺序：Initialize → DrawFrame* → Dispose。
// Dispose 必须可以重复调用，也必须能清理 Initialize 失败后残留的部分资源。
type Renderer interface {
	// Initialize 创建纹理和着色器，失败时返回 ErrNoAcceleration 或 ErrPipelineBuild
	Initialize(textures []Texture) error
	// DrawFrame 绘制一帧
	DrawFrame(dst *ebiten.Image, frame Frame) error
	// Dispose 释放 GPU 资源
	Dispose()
}
