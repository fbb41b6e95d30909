package effects

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newTestField(seed uint64) *Field {
	f := NewField(rand.New(rand.NewPCG(seed, seed)))
	f.Resize(800, 600)
	return f
}

func TestFieldBurstAndInterval(t *testing.T) {
	f := newTestField(1)
	f.Update(1.0)

	// 12 个初始爆发 + 1s 内 8 次定时生成
	if got := f.Len(); got != 20 {
		t.Errorf("Len = %d, want 20", got)
	}
}

func TestFieldNoSpawnWithoutSize(t *testing.T) {
	f := NewField(rand.New(rand.NewPCG(1, 1)))
	f.Update(1.0)
	if f.Len() != 0 {
		t.Errorf("未设置尺寸时不应生成, Len = %d", f.Len())
	}
}

func TestFieldSpawnRanges(t *testing.T) {
	f := newTestField(2)
	for i := 0; i < 100; i++ {
		f.spawn()
	}

	for i, h := range f.Hearts() {
		if h.X < -spawnMargin || h.X > 800+spawnMargin || h.Y < -spawnMargin || h.Y > 600+spawnMargin {
			t.Errorf("heart %d 起点越界: (%.1f, %.1f)", i, h.X, h.Y)
		}
		d := math.Hypot(h.DX, h.DY)
		if d < minDistance-1e-9 || d > minDistance+distanceRange+1e-9 {
			t.Errorf("heart %d 位移 %.1f 超出范围", i, d)
		}
		if h.Scale < minScale || h.Scale > minScale+scaleRange {
			t.Errorf("heart %d 缩放 %.2f 超出范围", i, h.Scale)
		}
	}
}

func TestFieldCap(t *testing.T) {
	f := newTestField(3)
	for i := 0; i < MaxHearts+50; i++ {
		f.spawn()
	}
	if f.Len() != MaxHearts {
		t.Errorf("Len = %d, want %d", f.Len(), MaxHearts)
	}
}

func TestFieldExpiry(t *testing.T) {
	f := newTestField(4)
	f.Update(0.5)
	if f.Len() == 0 {
		t.Fatal("应该已经生成爱心")
	}

	f.Update(HeartLifetime)
	for i, h := range f.Hearts() {
		if h.Age != 0 {
			t.Errorf("heart %d 应为新生成的 (Age = %.2f)", i, h.Age)
		}
	}
}

func TestHeartMotion(t *testing.T) {
	h := Heart{X: 10, Y: 20, DX: 100, DY: -50, Scale: 0.3}

	tests := []struct {
		name      string
		age       float64
		wantAlpha float64
		wantX     float64
	}{
		{"出生", 0, 0, 10},
		{"淡入完成", HeartLifetime * fadeIn, 1, 10 + 100*(1-math.Pow(1-fadeIn, 2))},
		{"中段", HeartLifetime / 2, 1, 10 + 100*0.75},
		{"结束", HeartLifetime, 0, 110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.Age = tt.age
			if a := h.Alpha(); math.Abs(a-tt.wantAlpha) > 1e-9 {
				t.Errorf("Alpha = %v, want %v", a, tt.wantAlpha)
			}
			if x, _ := h.Position(); math.Abs(x-tt.wantX) > 1e-9 {
				t.Errorf("X = %v, want %v", x, tt.wantX)
			}
		})
	}
}
