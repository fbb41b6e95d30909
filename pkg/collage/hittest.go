package collage

import "math"

// NoCard 表示没有命中任何卡片
const NoCard = -1

// HitTest 返回覆盖点 p 的卡片中中心最近的一张，否则返回 NoCard
//
// centers 和 p 都在 Surface.ToSquare 坐标系中，half 是卡片半边长。
// 卡片是轴对齐的正方形，判定区域与绘制出来的卡片一致，和表面长宽比无关。
func HitTest(centers []Vec2, p Vec2, half float64) int {
	best := NoCard
	bestDist := math.Inf(1)
	for i, c := range centers {
		d := c.Sub(p)
		if math.Abs(d.X) > half || math.Abs(d.Y) > half {
			continue
		}
		if l := d.Len(); l < bestDist {
			best = i
			bestDist = l
		}
	}
	return best
}
