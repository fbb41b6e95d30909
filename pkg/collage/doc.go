// Package collage 实现爱心照片拼贴动画
//
// 卡片（每张照片一张，没有照片时使用备用色块）从随机起点飞向
// 参数方程爱心曲线上的固定位置，之后保持静止并持续重绘以响应悬停。
//
// 坐标系统：
//   - 卡片位置使用归一化设备坐标（NDC），x、y ∈ [-1, 1]，y 轴向上
//   - 指针事件使用屏幕像素，通过 Surface.ToNDC 转换
//
// 图形 API 隐藏在 Renderer 接口之后，动画器本身不依赖着色器细节，
// 测试中可以替换为 NopRenderer。
package collage
