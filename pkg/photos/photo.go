// Package photos 提供拼贴画使用的照片来源
//
// 照片来源（Provider）是尽力而为的：单张照片解码失败会被跳过，
// 永远不会因为某一张坏图而让整次加载失败。唯一会返回的错误是
// 调用方 context 被取消。
package photos

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Photo 一张已解码的照片
type Photo struct {
	ID     string      // 照片引用（相对路径或 URL），点击卡片时回传给调用方
	Image  image.Image // 解码后的像素
	Width  int
	Height int
}

// Aspect 返回宽高比，尺寸未知时为 1
func (p Photo) Aspect() float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return 1
	}
	return float64(p.Width) / float64(p.Height)
}

// Provider 异步照片来源
type Provider interface {
	// Load 返回按清单顺序排列的照片（可能比清单短，也可能为空）
	Load(ctx context.Context) ([]Photo, error)
}

// ProviderFunc 函数适配器
type ProviderFunc func(ctx context.Context) ([]Photo, error)

// Load 实现 Provider
func (f ProviderFunc) Load(ctx context.Context) ([]Photo, error) {
	return f(ctx)
}

func decode(id string, r io.Reader) (Photo, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Photo{}, fmt.Errorf("failed to decode photo %s: %w", id, err)
	}
	b := img.Bounds()
	return Photo{
		ID:     id,
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

func decodeBytes(id string, data []byte) (Photo, error) {
	return decode(id, bytes.NewReader(data))
}
