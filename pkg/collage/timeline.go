package collage

import (
	"time"

	"github.com/decker502/heartcollage/pkg/utils"
)

// DefaultDuration 卡片飞入爱心的时长
const DefaultDuration = 2500 * time.Millisecond

// Timeline 动画时钟
//
// 第一次渲染时 Start，之后每帧根据当前时间计算进度。
// 进度被截断在 [0, 1] 且不会回退（即使系统时钟回拨）。
type Timeline struct {
	duration time.Duration
	start    time.Time
	started  bool
	progress float64
}

// NewTimeline 创建时钟，duration <= 0 时使用 DefaultDuration
func NewTimeline(duration time.Duration) *Timeline {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Timeline{duration: duration}
}

// Start 记录起始时间（只有第一次调用生效）
func (tl *Timeline) Start(now time.Time) {
	if tl.started {
		return
	}
	tl.start = now
	tl.started = true
	tl.progress = 0
}

// Started 是否已开始
func (tl *Timeline) Started() bool {
	return tl.started
}

// Reset 回到未开始状态（重新挂载时调用）
func (tl *Timeline) Reset() {
	tl.started = false
	tl.start = time.Time{}
	tl.progress = 0
}

// Progress 返回 min(elapsed/duration, 1)
func (tl *Timeline) Progress(now time.Time) float64 {
	if !tl.started {
		return 0
	}
	p := utils.Clamp01(float64(now.Sub(tl.start)) / float64(tl.duration))
	if p > tl.progress {
		tl.progress = p
	}
	return tl.progress
}

// Eased 返回三次缓出后的进度 1 − (1 − p)³
func (tl *Timeline) Eased(now time.Time) float64 {
	return utils.EaseOutCubic(tl.Progress(now))
}

// Done 动画是否已结束
func (tl *Timeline) Done(now time.Time) bool {
	return tl.Progress(now) >= 1
}
