package game

import (
	"log"

	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按 ID 创建场景，避免 game 与 scenes 之间的循环依赖
type SceneFactory func(id SceneID) Scene

// SceneManager manages the applet's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentID    SceneID
	sceneFactory SceneFactory

	// pending Goto 请求，在下一次 Update 开始时处理
	pending    SceneID
	hasPending bool

	width, height int
}

var _ Navigator = (*SceneManager)(nil)

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Goto to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene immediately.
//
// 旧场景收到 OnExit，新场景收到 OnEnter，随后立即收到当前尺寸。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil {
		if lc, ok := sm.currentScene.(Lifecycle); ok {
			lc.OnExit()
		}
	}

	sm.currentScene = scene
	if scene == nil {
		return
	}
	if lc, ok := scene.(Lifecycle); ok {
		lc.OnEnter()
	}
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
}

// Goto 请求切换到指定场景
//
// 场景通常在自己的 Update 中调用 Goto；实际切换延迟到下一次
// SceneManager.Update，避免场景在自己的调用栈里被卸载。
func (sm *SceneManager) Goto(id SceneID) {
	sm.pending = id
	sm.hasPending = true
}

func (sm *SceneManager) applyPending() {
	if !sm.hasPending {
		return
	}
	id := sm.pending
	sm.hasPending = false

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}
	scene := sm.sceneFactory(id)
	if scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", id)
		return
	}
	log.Printf("[SceneManager] 切换场景: %s -> %s", sm.currentID, id)
	sm.currentID = id
	sm.SwitchTo(scene)
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 当前场景 ID（通过 Goto 进入的场景）
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

// Resize 记录尺寸并转发给当前场景
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// HandlePointer 把指针事件转发给当前场景
func (sm *SceneManager) HandlePointer(events []utils.PointerEvent) {
	h, ok := sm.currentScene.(PointerHandler)
	if !ok {
		return
	}
	for _, ev := range events {
		h.HandlePointer(ev)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	sm.applyPending()
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Close 退出当前场景（应用关闭时调用）
func (sm *SceneManager) Close() {
	sm.SwitchTo(nil)
}
