package scenes

import (
	"testing"

	"github.com/decker502/heartcollage/pkg/game"
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

func newProposal(t *testing.T) (*ProposalScene, *testEnv) {
	env := newTestEnv(t)
	s := NewProposalScene(env.deps)
	s.OnEnter()
	s.Resize(800, 600)
	return s, env
}

func TestProposalYesAccepts(t *testing.T) {
	s, env := newProposal(t)

	click(s, s.yes.Rect)

	if !s.Flow().Accepted() {
		t.Fatal("点击 是 之后应为已答应")
	}
	if !env.deps.Progress.GetProgress().ProposalAccepted {
		t.Error("答应结果应写入进度")
	}
	if env.nav.last() != game.SceneCollage {
		t.Errorf("Goto = %v, want collage", env.nav.targets)
	}

	// 已答应后不再响应
	click(s, s.yes.Rect)
	if len(env.nav.targets) != 1 {
		t.Errorf("重复跳转: %v", env.nav.targets)
	}
}

func TestProposalNoDodges(t *testing.T) {
	s, env := newProposal(t)

	for i := 1; i <= 3; i++ {
		x, y := s.no.Rect.Center()
		s.HandlePointer(utils.PointerEvent{Kind: utils.PointerMove, Source: utils.SourceMouse, ID: utils.MouseID, X: x, Y: y})
		if s.Flow().Dodges() != i {
			t.Fatalf("第 %d 次进入后 Dodges = %d", i, s.Flow().Dodges())
		}
		if s.taunt == "" {
			t.Error("躲开后应显示嘲讽文案")
		}
		if s.no.Rect.Contains(x, y) {
			t.Errorf("按钮没有躲开指针: %+v", s.no.Rect)
		}
		// 移开指针，下一次重新进入
		s.HandlePointer(utils.PointerEvent{Kind: utils.PointerMove, Source: utils.SourceMouse, ID: utils.MouseID, X: -100, Y: -100})
	}

	if !s.Flow().ShowHint() {
		t.Error("躲开 3 次后应显示问号提示")
	}
	if s.Flow().Accepted() || len(env.nav.targets) != 0 {
		t.Error("躲避不应答应或跳转")
	}
}

func TestProposalNoTouchDodges(t *testing.T) {
	s, _ := newProposal(t)
	x, y := s.no.Rect.Center()

	s.HandlePointer(utils.PointerEvent{Kind: utils.PointerDown, Source: utils.SourceTouch, ID: 0, X: x, Y: y})
	s.HandlePointer(utils.PointerEvent{Kind: utils.PointerUp, Source: utils.SourceTouch, ID: 0, X: x, Y: y})

	if s.Flow().Dodges() != 1 {
		t.Errorf("Dodges = %d, want 1", s.Flow().Dodges())
	}
	if s.Flow().Accepted() {
		t.Error("触摸 不 按钮不应答应")
	}
}

func TestProposalCursor(t *testing.T) {
	s, env := newProposal(t)
	x, y := s.yes.Rect.Center()

	s.HandlePointer(utils.PointerEvent{Kind: utils.PointerMove, Source: utils.SourceMouse, ID: utils.MouseID, X: x, Y: y})
	s.Update(1.0 / 60)
	if env.cursor != ebiten.CursorShapePointer {
		t.Errorf("悬停 是 按钮时光标应为 pointer")
	}

	s.OnExit()
	if env.cursor != ebiten.CursorShapeDefault {
		t.Errorf("离开场景应恢复默认光标")
	}
}
