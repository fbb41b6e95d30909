package collage

import (
	"fmt"
	"image"
	"math/rand/v2"
	"testing"

	"github.com/decker502/heartcollage/pkg/photos"
)

func testPhotos(n int) []photos.Photo {
	list := make([]photos.Photo, n)
	for i := range list {
		list[i] = photos.Photo{
			ID:     fmt.Sprintf("p%03d.jpg", i),
			Image:  image.NewRGBA(image.Rect(0, 0, 4, 2)),
			Width:  4,
			Height: 2,
		}
	}
	return list
}

func TestSlotCount(t *testing.T) {
	tests := []struct {
		n, maxCards, want int
	}{
		{0, 0, FallbackCards},
		{1, 0, MinCards},
		{36, 0, 36},
		{50, 0, 50},
		{500, 0, HardCap},
		{500, 1000, HardCap},
		{500, 20, 20},
		{0, 10, 10},
	}
	for _, tt := range tests {
		if got := SlotCount(tt.n, tt.maxCards); got != tt.want {
			t.Errorf("SlotCount(%d, %d) = %d, want %d", tt.n, tt.maxCards, got, tt.want)
		}
	}
}

func TestBuildDeckCyclesPhotos(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	deck := BuildDeck(testPhotos(10), DeckOptions{}, rng)

	if len(deck.Cards) != MinCards {
		t.Fatalf("Expected %d cards, got %d", MinCards, len(deck.Cards))
	}
	if len(deck.Textures) != 10 {
		t.Fatalf("Expected 10 textures, got %d", len(deck.Textures))
	}
	targets := HeartPoints(MinCards, DefaultHeartScale)
	for i, c := range deck.Cards {
		if c.Index != i {
			t.Errorf("card %d: Index = %d", i, c.Index)
		}
		if c.Texture != i%10 {
			t.Errorf("card %d: Texture = %d, want %d", i, c.Texture, i%10)
		}
		if c.ImageID != fmt.Sprintf("p%03d.jpg", i%10) {
			t.Errorf("card %d: ImageID = %s", i, c.ImageID)
		}
		if c.Aspect != 2 {
			t.Errorf("card %d: Aspect = %v, want 2", i, c.Aspect)
		}
		if c.Target != targets[i] {
			t.Errorf("card %d: Target = %v, want %v", i, c.Target, targets[i])
		}
		if c.Start.X < -1 || c.Start.X > 1 || c.Start.Y < -1 || c.Start.Y > 1 {
			t.Errorf("card %d: Start %v 超出 NDC", i, c.Start)
		}
	}
}

func TestBuildDeckHardCap(t *testing.T) {
	deck := BuildDeck(testPhotos(500), DeckOptions{MaxCards: 999}, rand.New(rand.NewPCG(3, 4)))

	if len(deck.Cards) > HardCap {
		t.Fatalf("卡片数 %d 超过硬上限 %d", len(deck.Cards), HardCap)
	}
	if len(deck.Textures) > HardCap {
		t.Fatalf("纹理数 %d 超过硬上限 %d", len(deck.Textures), HardCap)
	}
	for i, c := range deck.Cards {
		if c.Texture != i%len(deck.Textures) {
			t.Errorf("card %d: Texture = %d", i, c.Texture)
		}
	}
}

func TestBuildDeckFallbackPalette(t *testing.T) {
	deck := BuildDeck(nil, DeckOptions{}, rand.New(rand.NewPCG(5, 6)))

	if len(deck.Cards) != FallbackCards {
		t.Fatalf("Expected %d fallback cards, got %d", FallbackCards, len(deck.Cards))
	}
	if len(deck.Textures) != len(FallbackPalette) {
		t.Fatalf("Expected %d fallback textures, got %d", len(FallbackPalette), len(deck.Textures))
	}
	for i, tex := range deck.Textures {
		if !tex.IsFallback() || tex.Fill != FallbackPalette[i] || tex.ID != "" {
			t.Errorf("texture %d 应为调色板颜色 %v, got %+v", i, FallbackPalette[i], tex)
		}
	}
	for i, c := range deck.Cards {
		if c.Texture != i%len(FallbackPalette) {
			t.Errorf("card %d: Texture = %d, want %d", i, c.Texture, i%len(FallbackPalette))
		}
		if c.ImageID != "" || c.Aspect != 1 {
			t.Errorf("card %d: 色块卡片不应有照片引用, got %+v", i, c)
		}
	}
}

func TestBuildDeckStartsDifferPerRNG(t *testing.T) {
	a := BuildDeck(testPhotos(3), DeckOptions{}, rand.New(rand.NewPCG(1, 1)))
	b := BuildDeck(testPhotos(3), DeckOptions{}, rand.New(rand.NewPCG(1, 1)))
	c := BuildDeck(testPhotos(3), DeckOptions{}, rand.New(rand.NewPCG(9, 9)))

	if a.Cards[0].Start != b.Cards[0].Start {
		t.Error("相同种子应产生相同起点")
	}
	if a.Cards[0].Start == c.Cards[0].Start {
		t.Error("不同种子应产生不同起点")
	}
}
