package game

import (
	"bytes"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager is responsible for centralized management of applet resources.
// It caches font faces per size and sprites rasterized at runtime, so each
// is created only once. Both caches are keyed by size; Release drops them
// when the surface size changes.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All access happens on the game loop goroutine.
type ResourceManager struct {
	spriteCache   map[string]*ebiten.Image     // sprite key -> Image
	fontFaceCache map[float64]*text.GoTextFace // size -> face

	fontSource *text.GoTextFaceSource
}

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		spriteCache:   make(map[string]*ebiten.Image),
		fontFaceCache: make(map[float64]*text.GoTextFace),
	}
}

// LoadFontSource 使用自定义字体替换内置的 Go Regular
func (rm *ResourceManager) LoadFontSource(data []byte) error {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create font source: %w", err)
	}
	rm.fontSource = source
	rm.fontFaceCache = make(map[float64]*text.GoTextFace)
	return nil
}

// Font 返回指定字号的字体（Go Regular，覆盖拉丁和西里尔字母）
func (rm *ResourceManager) Font(size float64) *text.GoTextFace {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face
	}

	if rm.fontSource == nil {
		if err := rm.LoadFontSource(goregular.TTF); err != nil {
			// 内置字体不应解析失败
			panic(err)
		}
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face
}

// Sprite 返回缓存的运行时生成图片，不存在时调用 build 生成
//
// key 需要包含影响外观的全部参数（尺寸、颜色）。
func (rm *ResourceManager) Sprite(key string, build func() image.Image) *ebiten.Image {
	if img, ok := rm.spriteCache[key]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(build())
	rm.spriteCache[key] = img
	return img
}

// SpriteCount 当前缓存的生成图片数量
func (rm *ResourceManager) SpriteCount() int {
	return len(rm.spriteCache)
}

// Release 释放生成的图片和按字号缓存的字体
//
// 尺寸变化后旧尺寸的面板和字号不再需要，调用方在表面尺寸变化时调用。
func (rm *ResourceManager) Release() {
	for _, img := range rm.spriteCache {
		img.Deallocate()
	}
	if n := len(rm.spriteCache); n > 0 {
		log.Printf("[ResourceManager] 释放 %d 个生成图片, %d 个字号", n, len(rm.fontFaceCache))
	}
	rm.spriteCache = make(map[string]*ebiten.Image)
	rm.fontFaceCache = make(map[float64]*text.GoTextFace)
}
