// Package render 基于 Ebitengine Kage 着色器的拼贴画渲染管线
package render

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/decker502/heartcollage/pkg/collage"
	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

//go:embed card.kage
var cardShaderSrc []byte

const (
	// DefaultMaxTextureSide 上传前照片最长边的上限
	DefaultMaxTextureSide = 512
	// DefaultBorder 边框宽度（占卡片边长的比例）
	DefaultBorder = 0.08

	// 备用色块纹理尺寸
	fillTextureSide = 4
)

// DefaultTint 悬停边框颜色
var DefaultTint = color.RGBA{R: 0xff, G: 0x2d, B: 0x55, A: 0xff}

// 单位正方形的 6 个角（两个三角形），所有卡片共用
var unitCorners = [6][2]float32{
	{-1, -1}, {1, -1}, {-1, 1},
	{-1, 1}, {1, -1}, {1, 1},
}

var quadIndices = []uint16{0, 1, 2, 3, 4, 5}

// Options 渲染器参数
type Options struct {
	MaxTextureSide int
	Border         float64
	Tint           color.RGBA
}

// KageRenderer 使用 Kage 着色器实现 collage.Renderer
type KageRenderer struct {
	opts Options

	// accelCheck 检查加速渲染上下文，测试中可替换
	accelCheck func() error

	shader   *ebiten.Shader
	textures []*ebiten.Image
	aspects  []float64
	layer    *ebiten.Image
	vertices []ebiten.Vertex
	uniforms map[string]any
}

var _ collage.Renderer = (*KageRenderer)(nil)

// NewKageRenderer 创建渲染器，GPU 资源在 Initialize 中创建
func NewKageRenderer(opts Options) *KageRenderer {
	if opts.MaxTextureSide <= 0 {
		opts.MaxTextureSide = DefaultMaxTextureSide
	}
	if opts.Border <= 0 {
		opts.Border = DefaultBorder
	}
	if opts.Tint == (color.RGBA{}) {
		opts.Tint = DefaultTint
	}
	return &KageRenderer{
		opts:       opts,
		accelCheck: checkAcceleration,
		vertices:   make([]ebiten.Vertex, len(unitCorners)),
		uniforms:   map[string]any{},
	}
}

func checkAcceleration() error {
	var info ebiten.DebugInfo
	ebiten.ReadDebugInfo(&info)
	if info.GraphicsLibrary == ebiten.GraphicsLibraryUnknown {
		return collage.ErrNoAcceleration
	}
	return nil
}

// Initialize 实现 collage.Renderer
func (r *KageRenderer) Initialize(textures []collage.Texture) error {
	if err := r.accelCheck(); err != nil {
		return err
	}

	shader, err := ebiten.NewShader(cardShaderSrc)
	if err != nil {
		return fmt.Errorf("%w: %v", collage.ErrPipelineBuild, err)
	}
	r.shader = shader

	r.textures = make([]*ebiten.Image, 0, len(textures))
	r.aspects = make([]float64, 0, len(textures))
	for _, t := range textures {
		r.textures = append(r.textures, ebiten.NewImageFromImage(textureImage(t, r.opts.MaxTextureSide)))
		r.aspects = append(r.aspects, textureAspect(t))
	}
	log.Printf("[Render] 着色器就绪, 上传 %d 个纹理", len(r.textures))
	return nil
}

// DrawFrame 实现 collage.Renderer
func (r *KageRenderer) DrawFrame(dst *ebiten.Image, frame collage.Frame) error {
	if r.shader == nil {
		return collage.ErrPipelineBuild
	}
	if dst == nil || len(r.textures) == 0 {
		return nil
	}

	r.ensureLayer(dst.Bounds().Dx(), dst.Bounds().Dy())
	r.layer.Clear()

	half := frame.CardSize * frame.Surface.MinSide() / 2
	for i, c := range frame.Cards {
		if c.Texture < 0 || c.Texture >= len(r.textures) {
			continue
		}
		tex := r.textures[c.Texture]
		x, y := frame.Surface.ToPixels(c.Center)
		scale := c.Scale
		if scale <= 0 {
			scale = 1
		}
		b := tex.Bounds()
		cardQuad(r.vertices, float32(x), float32(y), float32(half*scale), float32(b.Dx()), float32(b.Dy()))

		highlight := float32(0)
		if c.Highlight || i == frame.Hovered {
			highlight = 1
		}
		aspect := c.Aspect
		if aspect <= 0 {
			aspect = r.aspects[c.Texture]
		}
		r.uniforms["Aspect"] = float32(aspect)
		r.uniforms["Border"] = float32(r.opts.Border)
		r.uniforms["Highlight"] = highlight
		r.uniforms["Tint"] = tintVec(r.opts.Tint)

		op := &ebiten.DrawTrianglesShaderOptions{Uniforms: r.uniforms}
		op.Images[0] = tex
		r.layer.DrawTrianglesShader(r.vertices, quadIndices, r.shader, op)
	}

	dst.DrawImage(r.layer, nil)
	return nil
}

func (r *KageRenderer) ensureLayer(w, h int) {
	if r.layer != nil {
		b := r.layer.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		r.layer.Deallocate()
	}
	r.layer = ebiten.NewImage(max(w, 1), max(h, 1))
}

// Dispose 实现 collage.Renderer，可重复调用
func (r *KageRenderer) Dispose() {
	for _, t := range r.textures {
		t.Deallocate()
	}
	r.textures = nil
	r.aspects = nil
	if r.layer != nil {
		r.layer.Deallocate()
		r.layer = nil
	}
	if r.shader != nil {
		r.shader.Deallocate()
		r.shader = nil
		log.Printf("[Render] 渲染资源已释放")
	}
}

// cardQuad 填充一张卡片的 6 个顶点
//
// (cx, cy) 为像素中心，half 为半边长，srcW/srcH 为纹理尺寸。
func cardQuad(dst []ebiten.Vertex, cx, cy, half, srcW, srcH float32) {
	for i, c := range unitCorners {
		dst[i] = ebiten.Vertex{
			DstX:   cx + c[0]*half,
			DstY:   cy - c[1]*half, // NDC y 向上，屏幕 y 向下
			SrcX:   (c[0] + 1) / 2 * srcW,
			SrcY:   (1 - c[1]) / 2 * srcH,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
}

func tintVec(c color.RGBA) []float32 {
	return []float32{float32(c.R) / 0xff, float32(c.G) / 0xff, float32(c.B) / 0xff, float32(c.A) / 0xff}
}

func textureAspect(t collage.Texture) float64 {
	if t.Aspect > 0 {
		return t.Aspect
	}
	return 1
}

// textureImage 把纹理来源转换成待上传的图片
func textureImage(t collage.Texture, maxSide int) image.Image {
	if t.IsFallback() {
		img := image.NewRGBA(image.Rect(0, 0, fillTextureSide, fillTextureSide))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = t.Fill.R, t.Fill.G, t.Fill.B, t.Fill.A
		}
		return img
	}
	return Downscale(t.Image, maxSide)
}

// Downscale 把图片等比缩小到最长边不超过 maxSide，小图原样返回
func Downscale(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	var dw, dh int
	if w >= h {
		dw = maxSide
		dh = max(1, h*maxSide/w)
	} else {
		dh = maxSide
		dw = max(1, w*maxSide/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
