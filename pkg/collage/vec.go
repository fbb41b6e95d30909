package collage

import "math"

// Vec2 二维向量（NDC 坐标）
type Vec2 struct {
	X, Y float64
}

// Add 向量加法
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub 向量减法
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale 数乘
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len 向量长度
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Lerp 在 v 与 to 之间按 t 插值
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return v.Add(to.Sub(v).Scale(t))
}
