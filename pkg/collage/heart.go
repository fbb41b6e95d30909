package collage

import "math"

const (
	// heartNormalization 把爱心方程的原始范围（x ∈ [-16, 16]）压缩到 NDC
	heartNormalization = 1.0 / 17.0

	// DefaultHeartScale 爱心整体大小
	DefaultHeartScale = 0.85
)

// HeartPoints 在爱心曲线上等角度采样 n 个点
//
//	t = 2πi/n
//	x = 16·sin³(t)
//	y = 13·cos(t) − 5·cos(2t) − 2·cos(3t) − cos(4t)
//
// 结果只取决于 n 和 scale，第 i 个点永远对应同一位置，
// 保证卡片在帧与帧之间的身份稳定。
func HeartPoints(n int, scale float64) []Vec2 {
	if n <= 0 {
		return []Vec2{}
	}

	k := heartNormalization * scale
	points := make([]Vec2, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) * 2 * math.Pi
		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		points[i] = Vec2{X: x * k, Y: y * k}
	}
	return points
}
