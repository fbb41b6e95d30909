package collage

import (
	"math"
	"testing"
)

// TestHeartPointsCount 验证返回点数与请求一致
func TestHeartPointsCount(t *testing.T) {
	for _, n := range []int{1, 2, 7, 36, 64, 500} {
		if got := len(HeartPoints(n, DefaultHeartScale)); got != n {
			t.Errorf("HeartPoints(%d) 返回 %d 个点", n, got)
		}
	}
	if got := HeartPoints(0, 1); len(got) != 0 {
		t.Errorf("HeartPoints(0) 应返回空切片, got %d", len(got))
	}
	if got := HeartPoints(-3, 1); len(got) != 0 {
		t.Errorf("HeartPoints(-3) 应返回空切片, got %d", len(got))
	}
}

// TestHeartPointsDeterministic 验证相同参数得到相同序列
func TestHeartPointsDeterministic(t *testing.T) {
	a := HeartPoints(48, DefaultHeartScale)
	b := HeartPoints(48, DefaultHeartScale)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("第 %d 个点不一致: %v vs %v", i, a[i], b[i])
		}
	}
}

// TestHeartPointsShape 验证几个已知位置和范围
func TestHeartPointsShape(t *testing.T) {
	points := HeartPoints(4, 1)

	// t = 0: x = 0, y = 13 - 5 - 2 - 1 = 5（顶部凹陷）
	if math.Abs(points[0].X) > 1e-9 || math.Abs(points[0].Y-5.0/17) > 1e-9 {
		t.Errorf("t=0 位置错误: %v", points[0])
	}
	// t = π/2: x = 16, y = 0 - (-5) - 0 - 1 = 4
	if math.Abs(points[1].X-16.0/17) > 1e-9 || math.Abs(points[1].Y-4.0/17) > 1e-9 {
		t.Errorf("t=π/2 位置错误: %v", points[1])
	}
	// t = π: 爱心底部尖端 y = -13 - 5 + 2 - 1 = -17
	if math.Abs(points[2].Y+1) > 1e-9 {
		t.Errorf("t=π 应位于底部尖端 y=-1, got %v", points[2])
	}

	for _, p := range HeartPoints(200, DefaultHeartScale) {
		if math.Abs(p.X) > 1 || math.Abs(p.Y) > 1 {
			t.Fatalf("点 %v 超出 NDC 范围", p)
		}
	}
}
