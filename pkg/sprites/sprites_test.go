package sprites

import (
	"image"
	"image/color"
	"testing"
)

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	return a >> 8
}

func TestHeart(t *testing.T) {
	img := Heart(64, color.RGBA{R: 255, A: 255})

	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("size = %v, want 64x64", img.Bounds())
	}
	if a := alphaAt(img, 32, 40); a < 200 {
		t.Errorf("爱心中心应被填充, alpha = %d", a)
	}
	if a := alphaAt(img, 1, 62); a != 0 {
		t.Errorf("左下角应透明, alpha = %d", a)
	}
	if a := alphaAt(img, 32, 2); a != 0 {
		t.Errorf("顶部凹口上方应透明, alpha = %d", a)
	}

	r, _, _, _ := img.At(32, 40).RGBA()
	if r>>8 < 200 {
		t.Errorf("填充颜色错误, r = %d", r>>8)
	}
}

func TestHeartMinimumSize(t *testing.T) {
	if img := Heart(0, color.White); img.Bounds().Dx() != 1 {
		t.Errorf("非法尺寸应至少 1 像素, got %v", img.Bounds())
	}
}

func TestLayeredHeart(t *testing.T) {
	outer := color.RGBA{R: 200, G: 0, B: 0, A: 255}
	inner := color.RGBA{R: 0, G: 0, B: 200, A: 255}
	img := LayeredHeart(100, outer, inner)

	// 内层爱心覆盖中心
	_, _, b, _ := img.At(50, 45).RGBA()
	if b>>8 < 150 {
		t.Errorf("中心应为内层颜色, b = %d", b>>8)
	}
	// 靠近左侧边缘仍是外层颜色
	r, _, _, _ := img.At(8, 40).RGBA()
	if r>>8 < 150 {
		t.Errorf("边缘应为外层颜色, r = %d", r>>8)
	}
}

func TestRoundedPlate(t *testing.T) {
	img := RoundedPlate(120, 48, 24, color.RGBA{G: 255, A: 255}, color.White, 2)

	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 48 {
		t.Fatalf("size = %v", img.Bounds())
	}
	if a := alphaAt(img, 60, 24); a < 250 {
		t.Errorf("中心应不透明, alpha = %d", a)
	}
	if a := alphaAt(img, 0, 0); a != 0 {
		t.Errorf("圆角外应透明, alpha = %d", a)
	}
	_, g, _, _ := img.At(60, 24).RGBA()
	if g>>8 < 250 {
		t.Errorf("填充颜色错误, g = %d", g>>8)
	}
}

func TestFallbackPanel(t *testing.T) {
	img := FallbackPanel(300, 200)

	if img.Bounds().Dx() != 300 || img.Bounds().Dy() != 200 {
		t.Fatalf("size = %v", img.Bounds())
	}
	// 中间大爱心
	r, g, _, a := img.At(150, 105).RGBA()
	if a>>8 < 250 || r>>8 < 200 || g>>8 > 120 {
		t.Errorf("中心应为爱心颜色, got r=%d g=%d a=%d", r>>8, g>>8, a>>8)
	}
	// 底板不透明
	if a := alphaAt(img, 40, 100); a < 250 {
		t.Errorf("底板应不透明, alpha = %d", a)
	}
}
