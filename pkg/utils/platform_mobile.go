//go:build mobile

package utils

// IsMobile ebitenmobile 构建中恒为 true（不处理 F11 全屏切换）
func IsMobile() bool {
	return true
}
