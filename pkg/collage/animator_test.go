package collage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/decker502/heartcollage/pkg/photos"
	"github.com/decker502/heartcollage/pkg/utils"
)

// fakeClock 可控时钟
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestAnimator(r Renderer) (*Animator, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	a := NewAnimator(r, Options{Seed: 42, Clock: clock.Now, Duration: time.Second})
	a.Resize(800, 600)
	return a, clock
}

func staticProvider(list []photos.Photo) photos.Provider {
	return photos.ProviderFunc(func(ctx context.Context) ([]photos.Photo, error) {
		return list, nil
	})
}

// waitState 驱动 Update 直到到达目标状态
func waitState(t *testing.T, a *Animator, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for a.State() != want {
		if time.Now().After(deadline) {
			t.Fatalf("等待状态 %v 超时, 当前 %v", want, a.State())
		}
		a.Update()
		time.Sleep(time.Millisecond)
	}
}

// mountFinished 挂载并把动画推进到结束
func mountFinished(t *testing.T, a *Animator, clock *fakeClock, list []photos.Photo) {
	t.Helper()
	a.Mount(context.Background(), staticProvider(list))
	waitState(t, a, StateRunning)
	a.Draw(nil)
	clock.Advance(2 * time.Second)
	a.Draw(nil)
}

func pointerAt(a *Animator, kind utils.PointerKind, source utils.PointerSource, id int, card int) utils.PointerEvent {
	x, y := a.Surface().ToPixels(a.Centers()[card])
	return utils.PointerEvent{Kind: kind, Source: source, ID: id, X: x, Y: y}
}

func TestAnimatorReadyFiresOnce(t *testing.T) {
	r := &NopRenderer{}
	a, _ := newTestAnimator(r)
	a.Mount(context.Background(), staticProvider(testPhotos(3)))
	waitState(t, a, StateRunning)

	select {
	case <-a.Ready():
		t.Fatal("Ready 不应在首帧之前触发")
	default:
	}

	a.Draw(nil)
	a.Draw(nil)
	a.Draw(nil)

	count := 0
	for {
		select {
		case <-a.Ready():
			count++
			continue
		default:
		}
		break
	}
	if count != 1 {
		t.Errorf("Ready 触发 %d 次, want 1", count)
	}
	if r.Frames != 3 {
		t.Errorf("Frames = %d, want 3", r.Frames)
	}
}

func TestAnimatorAnimatesToHeart(t *testing.T) {
	r := &NopRenderer{}
	a, clock := newTestAnimator(r)
	a.Mount(context.Background(), staticProvider(testPhotos(5)))
	waitState(t, a, StateRunning)

	cards := a.Cards()
	a.Draw(nil)
	for i, c := range a.Centers() {
		if c != cards[i].Start {
			t.Fatalf("首帧卡片 %d 应位于起点", i)
		}
	}
	if !a.Animating() {
		t.Error("首帧后应仍在动画中")
	}

	clock.Advance(500 * time.Millisecond)
	a.Draw(nil)
	for i, c := range a.Centers() {
		want := cards[i].Start.Lerp(cards[i].Target, 0.875)
		if c.Sub(want).Len() > 1e-9 {
			t.Fatalf("卡片 %d 中点位置 %v, want %v", i, c, want)
		}
	}

	clock.Advance(10 * time.Second)
	a.Draw(nil)
	for i, c := range a.Centers() {
		if c.Sub(cards[i].Target).Len() > 1e-9 {
			t.Fatalf("动画结束后卡片 %d 应停在爱心上", i)
		}
	}
	if a.Animating() {
		t.Error("动画结束后 Animating 应为 false")
	}

	// 结束后仍持续重绘
	frames := r.Frames
	a.Draw(nil)
	if r.Frames != frames+1 {
		t.Error("动画结束后渲染循环应继续")
	}
}

func TestAnimatorCardCap(t *testing.T) {
	r := &NopRenderer{}
	a, clock := newTestAnimator(r)
	mountFinished(t, a, clock, testPhotos(500))

	if r.MaxCards > HardCap {
		t.Errorf("单帧绘制 %d 张卡片，超过上限 %d", r.MaxCards, HardCap)
	}
	if len(r.Textures) > HardCap {
		t.Errorf("上传 %d 个纹理，超过上限 %d", len(r.Textures), HardCap)
	}
	for i, c := range r.LastFrame.Cards {
		if c.Texture != i%len(r.Textures) {
			t.Errorf("card %d: Texture = %d", i, c.Texture)
		}
	}
}

func TestAnimatorFallbackPalette(t *testing.T) {
	r := &NopRenderer{}
	a, clock := newTestAnimator(r)
	mountFinished(t, a, clock, nil)

	if len(r.Textures) != len(FallbackPalette) {
		t.Fatalf("Expected %d fallback textures, got %d", len(FallbackPalette), len(r.Textures))
	}
	for i, tex := range r.Textures {
		if tex.Fill != FallbackPalette[i] {
			t.Errorf("texture %d = %v, want %v", i, tex.Fill, FallbackPalette[i])
		}
	}
	for i, c := range r.LastFrame.Cards {
		if c.Texture != i%len(FallbackPalette) {
			t.Errorf("card %d: Texture = %d", i, c.Texture)
		}
	}

	select {
	case <-a.Ready():
	default:
		t.Error("没有照片时也应触发 Ready")
	}

	// 色块卡片不产生点击通知
	a.HandlePointer(pointerAt(a, utils.PointerUp, utils.SourceMouse, utils.MouseID, 0))
	select {
	case id := <-a.Tapped():
		t.Errorf("色块卡片不应产生点击, got %q", id)
	default:
	}
}

func TestAnimatorMouseHoverAndTap(t *testing.T) {
	r := &NopRenderer{}
	a, clock := newTestAnimator(r)
	mountFinished(t, a, clock, testPhotos(4))

	a.HandlePointer(pointerAt(a, utils.PointerMove, utils.SourceMouse, utils.MouseID, 2))
	if a.Hovered() != 2 {
		t.Fatalf("Hovered = %d, want 2", a.Hovered())
	}
	a.Draw(nil)
	for i, c := range r.LastFrame.Cards {
		wantScale := 1.0
		if i == 2 {
			wantScale = DefaultHoverScale
		}
		if c.Scale != wantScale || c.Highlight != (i == 2) {
			t.Errorf("card %d: Scale = %v Highlight = %v", i, c.Scale, c.Highlight)
		}
	}

	a.HandlePointer(pointerAt(a, utils.PointerUp, utils.SourceMouse, utils.MouseID, 2))
	select {
	case id := <-a.Tapped():
		if id != "p002.jpg" {
			t.Errorf("tapped = %q, want p002.jpg", id)
		}
	default:
		t.Fatal("鼠标释放在卡片上应触发点击")
	}
}

func TestAnimatorHitMatchesDrawnCard(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"竖屏手机", 780, 1688},
		{"横屏桌面", 1920, 1080},
		{"正方形", 800, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &NopRenderer{}
			a, clock := newTestAnimator(r)
			mountFinished(t, a, clock, testPhotos(4))
			a.Resize(tt.width, tt.height)

			// 卡片 0 在爱心顶部凹口，邻居都在它上方，向下偏移不会靠近别的卡片
			half := DefaultCardSize * a.Surface().MinSide() / 2
			x, y := a.Surface().ToPixels(a.Centers()[0])
			move := func(dx, dy float64) int {
				a.HandlePointer(utils.PointerEvent{Kind: utils.PointerMove, Source: utils.SourceMouse, ID: utils.MouseID, X: x + dx, Y: y + dy})
				return a.Hovered()
			}

			if got := move(0, 0.9*half); got != 0 {
				t.Errorf("卡片内侧 0.9×half: Hovered = %d, want 0", got)
			}
			if got := move(0.9*half, 0.9*half); got != 0 {
				t.Errorf("卡片角落内侧: Hovered = %d, want 0", got)
			}
			if got := move(0, 1.5*half); got != NoCard {
				t.Errorf("卡片外 1.5×half: Hovered = %d, want NoCard", got)
			}
		})
	}
}

func TestAnimatorTouchSemantics(t *testing.T) {
	r := &NopRenderer{}
	a, clock := newTestAnimator(r)
	mountFinished(t, a, clock, testPhotos(4))

	// A → B
	a.HandlePointer(pointerAt(a, utils.PointerDown, utils.SourceTouch, 0, 1))
	a.HandlePointer(pointerAt(a, utils.PointerUp, utils.SourceTouch, 0, 3))
	select {
	case id := <-a.Tapped():
		t.Fatalf("按下 A 释放 B 不应点击, got %q", id)
	default:
	}

	// A → A
	a.HandlePointer(pointerAt(a, utils.PointerDown, utils.SourceTouch, 0, 1))
	a.HandlePointer(pointerAt(a, utils.PointerUp, utils.SourceTouch, 0, 1))
	select {
	case id := <-a.Tapped():
		if id != "p001.jpg" {
			t.Errorf("tapped = %q, want p001.jpg", id)
		}
	default:
		t.Fatal("按下并释放同一卡片应点击")
	}
}

func TestAnimatorUnmountBeforeLoad(t *testing.T) {
	r := &NopRenderer{}
	a, _ := newTestAnimator(r)

	release := make(chan struct{})
	returned := make(chan struct{})
	provider := photos.ProviderFunc(func(ctx context.Context) ([]photos.Photo, error) {
		defer close(returned)
		<-release
		return testPhotos(3), nil
	})

	a.Mount(context.Background(), provider)
	a.Unmount()
	close(release)
	<-returned

	for i := 0; i < 20; i++ {
		a.Update()
		a.Draw(nil)
		time.Sleep(time.Millisecond)
	}
	if r.Initialized != 0 {
		t.Errorf("卸载后不应初始化渲染管线, Initialized = %d", r.Initialized)
	}
	if a.State() != StateIdle {
		t.Errorf("State = %v, want idle", a.State())
	}
	if r.Disposed != 0 {
		t.Errorf("未初始化的管线不应被释放, Disposed = %d", r.Disposed)
	}
}

func TestAnimatorUnmountCancelsLoad(t *testing.T) {
	a, _ := newTestAnimator(&NopRenderer{})

	cancelled := make(chan struct{})
	a.Mount(context.Background(), photos.ProviderFunc(func(ctx context.Context) ([]photos.Photo, error) {
		<-ctx.Done()
		close(cancelled)
		return nil, ctx.Err()
	}))
	a.Unmount()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("卸载应取消进行中的加载")
	}
}

func TestAnimatorRemountDisposesOnce(t *testing.T) {
	r := &NopRenderer{}
	a, clock := newTestAnimator(r)
	mountFinished(t, a, clock, testPhotos(2))
	firstReady := a.Ready()

	mountFinished(t, a, clock, testPhotos(2))
	if r.Initialized != 2 {
		t.Errorf("Initialized = %d, want 2", r.Initialized)
	}
	if r.Disposed != 1 {
		t.Errorf("重新挂载应释放旧管线一次, Disposed = %d", r.Disposed)
	}
	select {
	case <-a.Ready():
	default:
		t.Error("重新挂载后应再次触发 Ready")
	}
	if firstReady == a.Ready() {
		t.Error("每次挂载应使用新的 Ready channel")
	}

	a.Unmount()
	a.Unmount()
	if r.Disposed != 2 {
		t.Errorf("重复卸载只应释放一次, Disposed = %d", r.Disposed)
	}
}

func TestAnimatorInitFailure(t *testing.T) {
	r := &NopRenderer{InitErr: ErrNoAcceleration}
	a, _ := newTestAnimator(r)
	a.Mount(context.Background(), staticProvider(testPhotos(2)))
	waitState(t, a, StateFailed)

	select {
	case err := <-a.Failed():
		if !errors.Is(err, ErrNoAcceleration) {
			t.Errorf("Failed() = %v, want ErrNoAcceleration", err)
		}
	default:
		t.Fatal("初始化失败应通过 Failed() 通知")
	}

	a.Draw(nil)
	select {
	case <-a.Ready():
		t.Error("失败后不应触发 Ready")
	default:
	}
	if a.Hovered() != NoCard {
		t.Error("失败状态下不应有悬停")
	}
	a.Unmount()
}

func TestAnimatorIgnoresPointerBeforeRunning(t *testing.T) {
	a, _ := newTestAnimator(&NopRenderer{})
	a.HandlePointer(utils.PointerEvent{Kind: utils.PointerUp, Source: utils.SourceMouse, X: 400, Y: 300})
	if a.Hovered() != NoCard {
		t.Error("未运行时不应有悬停")
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateIdle: "idle", StateLoading: "loading", StateRunning: "running", StateFailed: "failed", State(9): "unknown",
	} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
