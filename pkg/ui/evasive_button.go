package ui

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/heartcollage/pkg/utils"
)

const (
	// 每次躲开的距离范围（像素）
	minDodgeDistance = 80
	dodgeSpread      = 60

	dodgeAttempts = 8
)

// EvasiveButton 会躲开指针的按钮（"不" 按钮）
//
// 鼠标进入或触摸按下时跳到附近的随机位置，永远不会产生点击。
type EvasiveButton struct {
	*Button

	// Bounds 按钮可以移动的范围
	Bounds Rect

	rng    *rand.Rand
	inside bool
}

// NewEvasiveButton 创建躲避按钮
func NewEvasiveButton(label string, rect, bounds Rect, style Style, rng *rand.Rand) *EvasiveButton {
	return &EvasiveButton{
		Button: NewButton(label, rect, style),
		Bounds: bounds,
		rng:    rng,
	}
}

// Update 处理一个指针事件，返回是否躲开了一次
func (e *EvasiveButton) Update(ev utils.PointerEvent) bool {
	if ev.Kind == utils.PointerLeave {
		e.inside = false
		e.State = UINormal
		return false
	}

	inside := e.Rect.Contains(ev.X, ev.Y)
	entered := inside && !e.inside
	e.inside = inside

	trigger := false
	switch ev.Kind {
	case utils.PointerMove:
		trigger = entered && !ev.IsTouch()
	case utils.PointerDown:
		trigger = inside
	}
	if !trigger {
		if !ev.IsTouch() && inside {
			e.State = UIHovered
		} else {
			e.State = UINormal
		}
		return false
	}

	e.dodge(ev.X, ev.Y)
	e.inside = e.Rect.Contains(ev.X, ev.Y)
	e.State = UINormal
	return true
}

// dodge 随机方向跳开，尽量让指针落在按钮外
func (e *EvasiveButton) dodge(px, py float64) {
	var candidate Rect
	for i := 0; i < dodgeAttempts; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		dist := minDodgeDistance + e.rng.Float64()*dodgeSpread
		candidate = e.clamp(Rect{
			X: e.Rect.X + math.Cos(angle)*dist,
			Y: e.Rect.Y + math.Sin(angle)*dist,
			W: e.Rect.W,
			H: e.Rect.H,
		})
		if !candidate.Contains(px, py) {
			break
		}
	}

	if candidate.Contains(px, py) {
		// 范围太小，跳到离指针最远的角落
		candidate = e.farthestCorner(px, py)
	}
	e.Rect = candidate
}

func (e *EvasiveButton) clamp(r Rect) Rect {
	b := e.Bounds
	if b.W <= 0 || b.H <= 0 {
		return r
	}
	r.X = math.Max(b.X, math.Min(r.X, b.X+b.W-r.W))
	r.Y = math.Max(b.Y, math.Min(r.Y, b.Y+b.H-r.H))
	return r
}

func (e *EvasiveButton) farthestCorner(px, py float64) Rect {
	b := e.Bounds
	best := e.Rect
	bestDist := -1.0
	for _, c := range [][2]float64{{b.X, b.Y}, {b.X + b.W - e.Rect.W, b.Y}, {b.X, b.Y + b.H - e.Rect.H}, {b.X + b.W - e.Rect.W, b.Y + b.H - e.Rect.H}} {
		r := Rect{X: c[0], Y: c[1], W: e.Rect.W, H: e.Rect.H}
		cx, cy := r.Center()
		if d := math.Hypot(cx-px, cy-py); d > bestDist {
			best, bestDist = r, d
		}
	}
	return best
}
