package ui

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/heartcollage/pkg/utils"
)

func newEvasive(seed uint64) *EvasiveButton {
	bounds := Rect{X: 0, Y: 0, W: 400, H: 300}
	return NewEvasiveButton("Нет", Rect{X: 160, Y: 130, W: 80, H: 40}, bounds, SecondaryStyle, rand.New(rand.NewPCG(seed, 1)))
}

func inside(outer, inner Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.X+inner.W <= outer.X+outer.W+1e-9 && inner.Y+inner.H <= outer.Y+outer.H+1e-9
}

func TestEvasiveButtonDodgesMouse(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		e := newEvasive(seed)
		before := e.Rect
		cx, cy := before.Center()

		if !e.Update(mouse(utils.PointerMove, cx, cy)) {
			t.Fatalf("seed %d: 鼠标进入应躲开", seed)
		}
		if e.Rect == before {
			t.Fatalf("seed %d: 位置没有变化", seed)
		}
		if e.Rect.Contains(cx, cy) {
			t.Errorf("seed %d: 躲开后指针仍在按钮内 %+v", seed, e.Rect)
		}
		if !inside(e.Bounds, e.Rect) {
			t.Errorf("seed %d: 按钮越界 %+v", seed, e.Rect)
		}
		if e.Rect.W != before.W || e.Rect.H != before.H {
			t.Errorf("seed %d: 尺寸改变 %+v", seed, e.Rect)
		}
	}
}

func TestEvasiveButtonNeverClicks(t *testing.T) {
	e := newEvasive(7)
	cx, cy := e.Rect.Center()

	if !e.Update(touch(utils.PointerDown, 1, cx, cy)) {
		t.Fatal("触摸按下应躲开")
	}
	if e.Update(touch(utils.PointerUp, 1, cx, cy)) {
		t.Error("释放不应触发躲避或点击")
	}
}

func TestEvasiveButtonIgnoresOutside(t *testing.T) {
	e := newEvasive(3)
	before := e.Rect

	if e.Update(mouse(utils.PointerMove, 5, 5)) {
		t.Error("外部移动不应躲开")
	}
	if e.Update(touch(utils.PointerDown, 2, 390, 290)) {
		t.Error("外部触摸不应躲开")
	}
	if e.Rect != before {
		t.Errorf("位置不应变化: %+v", e.Rect)
	}
}

func TestEvasiveButtonTinyBounds(t *testing.T) {
	// 范围只比按钮稍大，随机位置几乎都覆盖指针
	bounds := Rect{X: 0, Y: 0, W: 100, H: 50}
	e := NewEvasiveButton("Нет", Rect{X: 10, Y: 5, W: 80, H: 40}, bounds, SecondaryStyle, rand.New(rand.NewPCG(9, 9)))

	e.Update(mouse(utils.PointerMove, 50, 25))
	if !inside(bounds, e.Rect) {
		t.Errorf("按钮越界 %+v", e.Rect)
	}
}

func TestEvasiveButtonLeaveResetsEntry(t *testing.T) {
	// 范围和按钮一样大，躲不开，指针一直在按钮内
	r := Rect{X: 0, Y: 0, W: 80, H: 40}
	e := NewEvasiveButton("Нет", r, r, SecondaryStyle, rand.New(rand.NewPCG(3, 3)))

	if !e.Update(mouse(utils.PointerMove, 40, 20)) {
		t.Fatal("鼠标进入应躲开")
	}
	if e.Update(mouse(utils.PointerMove, 41, 20)) {
		t.Fatal("仍在按钮内移动不应再次躲开")
	}

	if e.Update(mouse(utils.PointerLeave, 41, 20)) {
		t.Fatal("离开不应躲开")
	}
	if e.State != UINormal {
		t.Errorf("离开后 State = %v, want normal", e.State)
	}
	if !e.Update(mouse(utils.PointerMove, 41, 20)) {
		t.Error("离开后重新进入应再次躲开")
	}
}
