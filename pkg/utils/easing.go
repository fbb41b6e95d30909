package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 超出区间的输入会先被截断，保证调用方拿到的值永远落在 [0, 1]。
//
// 参考：https://easings.net/

// Clamp01 将 t 截断到 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（卡片"飞向爱心"使用此曲线）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// EaseOutQuad 二次方缓出
// 特点：比 Cubic 更柔和，用于漂浮爱心的淡出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
