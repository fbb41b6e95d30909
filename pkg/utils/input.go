// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerKind 指针事件类型
type PointerKind int

const (
	// PointerMove 指针移动
	PointerMove PointerKind = iota
	// PointerDown 按下（鼠标左键或触摸开始）
	PointerDown
	// PointerUp 释放（鼠标左键或触摸结束）
	PointerUp
	// PointerLeave 鼠标离开绘制表面（或窗口失去焦点），只对鼠标产生
	PointerLeave
)

// PointerSource 指针来源
type PointerSource int

const (
	// SourceMouse 桌面鼠标
	SourceMouse PointerSource = iota
	// SourceTouch 触摸屏
	SourceTouch
)

// MouseID 鼠标事件使用的 ID（触摸 ID 都是非负数）
const MouseID = -1

// PointerEvent 统一的鼠标/触摸事件
//
// X, Y 为屏幕坐标（Layout 返回的逻辑像素）
type PointerEvent struct {
	Kind   PointerKind
	Source PointerSource
	ID     int
	X, Y   float64
}

// IsTouch 是否为触摸事件
func (e PointerEvent) IsTouch() bool {
	return e.Source == SourceTouch
}

type point struct{ x, y float64 }

// pointerSnapshot 一帧的原始输入状态
type pointerSnapshot struct {
	cursor            point
	blurred           bool // 窗口失去焦点
	mouseJustPressed  bool
	mouseJustReleased bool
	touches           map[int]point
	justPressed       []int
	justReleased      []int
}

// PointerPoller 每帧把 Ebitengine 的输入状态转换为 PointerEvent 序列
//
// 触摸释放时 Ebitengine 已经拿不到位置，因此这里保存每个触摸的最后位置。
type PointerPoller struct {
	lastCursor   point
	hasCursor    bool
	cursorInside bool
	lastTouches  map[int]point

	width, height float64
}

// NewPointerPoller 创建指针轮询器
func NewPointerPoller() *PointerPoller {
	return &PointerPoller{
		lastTouches: make(map[int]point),
	}
}

// SetBounds 设置绘制表面尺寸，光标移出该范围时产生 PointerLeave
//
// 尺寸为 0 时不做范围判断。
func (p *PointerPoller) SetBounds(width, height int) {
	p.width, p.height = float64(width), float64(height)
}

func (p *PointerPoller) contains(pos point) bool {
	if p.width <= 0 || p.height <= 0 {
		return true
	}
	return pos.x >= 0 && pos.y >= 0 && pos.x < p.width && pos.y < p.height
}

// Poll 读取当前帧输入并返回事件（每个 tick 调用一次）
func (p *PointerPoller) Poll() []PointerEvent {
	return p.events(readSnapshot())
}

func readSnapshot() pointerSnapshot {
	cx, cy := ebiten.CursorPosition()
	s := pointerSnapshot{
		cursor:            point{float64(cx), float64(cy)},
		blurred:           !ebiten.IsFocused(),
		mouseJustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		mouseJustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		touches:           make(map[int]point),
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		s.touches[int(id)] = point{float64(x), float64(y)}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		s.justPressed = append(s.justPressed, int(id))
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		s.justReleased = append(s.justReleased, int(id))
	}
	return s
}

// events 根据快照与上一帧状态生成事件
// 顺序：鼠标移动/离开 → 鼠标按下/释放 → 触摸按下 → 触摸移动 → 触摸释放
func (p *PointerPoller) events(s pointerSnapshot) []PointerEvent {
	var out []PointerEvent

	// 触摸进行中时浏览器会同步光标位置，这里不产生鼠标事件
	touching := len(s.touches) > 0 || len(s.justReleased) > 0
	inside := !s.blurred && p.contains(s.cursor)
	switch {
	case !inside:
		if p.cursorInside && !touching {
			out = append(out, mouseEvent(PointerLeave, s.cursor))
		}
		p.cursorInside = false
	case !p.hasCursor || !p.cursorInside || s.cursor != p.lastCursor:
		if !touching {
			out = append(out, mouseEvent(PointerMove, s.cursor))
			p.cursorInside = true
		}
	}
	p.lastCursor = s.cursor
	p.hasCursor = true
	if s.mouseJustPressed {
		out = append(out, mouseEvent(PointerDown, s.cursor))
	}
	if s.mouseJustReleased {
		out = append(out, mouseEvent(PointerUp, s.cursor))
	}

	pressed := make(map[int]bool, len(s.justPressed))
	for _, id := range s.justPressed {
		pos, ok := s.touches[id]
		if !ok {
			continue
		}
		pressed[id] = true
		p.lastTouches[id] = pos
		out = append(out, touchEvent(PointerDown, id, pos))
	}
	for id, pos := range s.touches {
		if pressed[id] {
			continue
		}
		if last, ok := p.lastTouches[id]; ok && last == pos {
			continue
		}
		p.lastTouches[id] = pos
		out = append(out, touchEvent(PointerMove, id, pos))
	}
	for _, id := range s.justReleased {
		pos, ok := p.lastTouches[id]
		if !ok {
			continue
		}
		delete(p.lastTouches, id)
		out = append(out, touchEvent(PointerUp, id, pos))
	}
	return out
}

func mouseEvent(kind PointerKind, pos point) PointerEvent {
	return PointerEvent{Kind: kind, Source: SourceMouse, ID: MouseID, X: pos.x, Y: pos.y}
}

func touchEvent(kind PointerKind, id int, pos point) PointerEvent {
	return PointerEvent{Kind: kind, Source: SourceTouch, ID: id, X: pos.x, Y: pos.y}
}
