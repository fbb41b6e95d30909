package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行（拉丁/西里尔文本按单词换行）
//   - 单词太长超过最大宽度时，强制按字符断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measureTextWidth(candidate, font) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if measureTextWidth(word, font) <= maxWidth {
			current = word
			continue
		}

		// 单词本身超宽，按字符断开
		parts := breakWord(word, font, maxWidth)
		lines = append(lines, parts[:len(parts)-1]...)
		current = parts[len(parts)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}

// breakWord 把超宽的单词按字符拆成多行，至少返回一个元素
func breakWord(word string, font *text.GoTextFace, maxWidth float64) []string {
	var parts []string
	current := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]
		test := current + string(r)
		if current != "" && measureTextWidth(test, font) > maxWidth {
			parts = append(parts, current)
			current = string(r)
			continue
		}
		current = test
	}
	return append(parts, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
