package collage

import "github.com/decker502/heartcollage/pkg/utils"

// Interaction 悬停/点击状态机
//
// 桌面：鼠标移动持续更新悬停下标；鼠标释放时命中卡片立即触发点击。
// 触摸：记录第一根手指按下时命中的卡片，只有在同一根手指释放且
// 命中同一张卡片时才触发点击（避免滑动时误触）。其余同时按下的手指被忽略。
//
// 悬停只会被鼠标移动、鼠标离开表面或匹配的触摸释放修改。
type Interaction struct {
	hovered    int
	touchID    int
	touchStart int
	touching   bool
}

// NewInteraction 创建交互状态
func NewInteraction() *Interaction {
	return &Interaction{hovered: NoCard, touchStart: NoCard}
}

// Hovered 当前悬停/选中的卡片，NoCard 表示无
func (in *Interaction) Hovered() int {
	return in.hovered
}

// Reset 清空状态（重新挂载时调用）
func (in *Interaction) Reset() {
	*in = Interaction{hovered: NoCard, touchStart: NoCard}
}

// Handle 处理一个指针事件
//
// 参数：
//   - ev: 指针事件
//   - hit: 命中测试结果（ev 位置命中的卡片或 NoCard）
//
// 返回：
//   - tapped: 被点击的卡片下标
//   - ok: 本事件是否构成一次点击
func (in *Interaction) Handle(ev utils.PointerEvent, hit int) (tapped int, ok bool) {
	if ev.IsTouch() {
		return in.handleTouch(ev, hit)
	}

	switch ev.Kind {
	case utils.PointerMove:
		in.hovered = hit
	case utils.PointerLeave:
		in.hovered = NoCard
	case utils.PointerUp:
		if hit != NoCard {
			return hit, true
		}
	}
	return NoCard, false
}

func (in *Interaction) handleTouch(ev utils.PointerEvent, hit int) (int, bool) {
	switch ev.Kind {
	case utils.PointerDown:
		if in.touching {
			// 多点触控：只跟踪第一根手指
			return NoCard, false
		}
		in.touching = true
		in.touchID = ev.ID
		in.touchStart = hit
	case utils.PointerUp:
		if !in.touching || ev.ID != in.touchID {
			return NoCard, false
		}
		start := in.touchStart
		in.touching = false
		in.touchStart = NoCard
		if hit != NoCard && hit == start {
			in.hovered = hit
			return hit, true
		}
	}
	return NoCard, false
}
