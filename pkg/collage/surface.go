package collage

import "math"

// MaxPixelRatio 设备像素比上限，高 DPI 屏幕上限制绘制开销
const MaxPixelRatio = 2.0

// SurfaceSize 根据容器尺寸（逻辑像素）和设备像素比计算绘制表面尺寸
func SurfaceSize(width, height, deviceScale float64) (int, int) {
	r := deviceScale
	if r < 1 || math.IsNaN(r) {
		r = 1
	}
	if r > MaxPixelRatio {
		r = MaxPixelRatio
	}
	w := int(math.Ceil(width * r))
	h := int(math.Ceil(height * r))
	return max(w, 1), max(h, 1)
}

// Surface 绘制表面尺寸（像素），负责像素与 NDC 互相转换
type Surface struct {
	Width, Height int
}

// Valid 尺寸是否可用
func (s Surface) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// ToNDC 屏幕像素 → NDC（y 轴向上）
func (s Surface) ToNDC(x, y float64) Vec2 {
	if !s.Valid() {
		return Vec2{}
	}
	return Vec2{
		X: x/float64(s.Width)*2 - 1,
		Y: 1 - y/float64(s.Height)*2,
	}
}

// ToPixels NDC → 屏幕像素
func (s Surface) ToPixels(p Vec2) (float64, float64) {
	return (p.X + 1) / 2 * float64(s.Width), (1 - p.Y) / 2 * float64(s.Height)
}

// ToSquare 屏幕像素 → 以较短边一半为单位、原点在中心的坐标（y 轴向上）
//
// 卡片在这个坐标系中是半边长为 CardSize 的正方形。
func (s Surface) ToSquare(x, y float64) Vec2 {
	if !s.Valid() {
		return Vec2{}
	}
	u := s.MinSide() / 2
	return Vec2{
		X: (x - float64(s.Width)/2) / u,
		Y: (float64(s.Height)/2 - y) / u,
	}
}

// SquareFromNDC NDC → ToSquare 坐标系
func (s Surface) SquareFromNDC(p Vec2) Vec2 {
	if !s.Valid() {
		return Vec2{}
	}
	m := s.MinSide()
	return Vec2{X: p.X * float64(s.Width) / m, Y: p.Y * float64(s.Height) / m}
}

// MinSide 较短边长度
func (s Surface) MinSide() float64 {
	return float64(min(s.Width, s.Height))
}
