package collage

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/decker502/heartcollage/pkg/photos"
)

const (
	// HardCap 屏幕上卡片数量的硬上限，与提供了多少照片无关
	HardCap = 64
	// MinCards 照片较少时也至少铺满这么多卡片（循环复用照片）
	MinCards = 36
	// FallbackCards 没有照片时使用的色块卡片数量
	FallbackCards = 36
)

// FallbackPalette 没有照片时循环使用的色块
var FallbackPalette = []color.RGBA{
	{R: 0xff, G: 0x4d, B: 0x6d, A: 0xff},
	{R: 0xff, G: 0x8f, B: 0xa3, A: 0xff},
	{R: 0xc9, G: 0x18, B: 0x4a, A: 0xff},
	{R: 0xff, G: 0xb3, B: 0xc1, A: 0xff},
	{R: 0xa4, G: 0x13, B: 0x3c, A: 0xff},
	{R: 0xff, G: 0xcc, B: 0xd5, A: 0xff},
	{R: 0xe0, G: 0x60, B: 0x7e, A: 0xff},
	{R: 0x80, G: 0x0f, B: 0x2f, A: 0xff},
}

// Texture 一张唯一纹理的来源：照片或纯色
type Texture struct {
	ID     string      // 照片引用，色块为空
	Image  image.Image // 为 nil 时使用 Fill
	Fill   color.RGBA
	Aspect float64
}

// IsFallback 是否为备用色块
func (t Texture) IsFallback() bool {
	return t.Image == nil
}

// Card 一张卡片
type Card struct {
	Index   int
	Texture int     // 在 Deck.Textures 中的下标
	ImageID string  // 点击时回传的照片引用，色块为空
	Aspect  float64 // 宽高比，未知时为 1
	Start   Vec2    // 随机起点（每次挂载重新采样）
	Target  Vec2    // 爱心曲线上的位置（由 Index 决定）
}

// Deck 一次挂载使用的全部卡片和纹理
type Deck struct {
	Cards    []Card
	Textures []Texture
}

// DeckOptions 卡片生成参数
type DeckOptions struct {
	HeartScale float64 // 爱心大小，<= 0 时使用 DefaultHeartScale
	MaxCards   int     // 卡片上限，<= 0 或超过 HardCap 时使用 HardCap
}

func (o DeckOptions) maxCards() int {
	if o.MaxCards <= 0 || o.MaxCards > HardCap {
		return HardCap
	}
	return o.MaxCards
}

func (o DeckOptions) heartScale() float64 {
	if o.HeartScale <= 0 {
		return DefaultHeartScale
	}
	return o.HeartScale
}

// SlotCount 计算 n 张照片对应的卡片数量
//
//   - n == 0: FallbackCards
//   - 其他: clamp(n, MinCards, maxCards)
func SlotCount(n, maxCards int) int {
	if maxCards <= 0 || maxCards > HardCap {
		maxCards = HardCap
	}
	if n <= 0 {
		return min(FallbackCards, maxCards)
	}
	return min(max(n, MinCards), maxCards)
}

// BuildDeck 根据照片生成卡片
//
// 照片超过卡片上限时只使用前 maxCards 张；卡片多于照片时按 i mod 照片数循环。
func BuildDeck(list []photos.Photo, opts DeckOptions, rng *rand.Rand) Deck {
	maxCards := opts.maxCards()
	slots := SlotCount(len(list), maxCards)

	var textures []Texture
	if len(list) == 0 {
		textures = make([]Texture, len(FallbackPalette))
		for i, c := range FallbackPalette {
			textures[i] = Texture{Fill: c, Aspect: 1}
		}
	} else {
		used := list[:min(len(list), maxCards)]
		textures = make([]Texture, len(used))
		for i, p := range used {
			textures[i] = Texture{ID: p.ID, Image: p.Image, Aspect: p.Aspect()}
		}
	}

	targets := HeartPoints(slots, opts.heartScale())
	cards := make([]Card, slots)
	for i := range cards {
		tex := i % len(textures)
		cards[i] = Card{
			Index:   i,
			Texture: tex,
			ImageID: textures[tex].ID,
			Aspect:  textures[tex].Aspect,
			Start:   Vec2{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1},
			Target:  targets[i],
		}
	}
	return Deck{Cards: cards, Textures: textures}
}
