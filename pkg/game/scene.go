package game

import (
	"github.com/decker502/heartcollage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents an applet screen (proposal, collage, quiz).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Lifecycle 是一个可选接口，场景切换时调用
//
// 拼贴画场景在 OnEnter 中挂载动画器，在 OnExit 中卸载并释放 GPU 资源。
type Lifecycle interface {
	OnEnter()
	OnExit()
}

// Resizable 是一个可选接口，绘制表面尺寸变化时调用
//
// width, height 为 Layout 返回的逻辑像素尺寸。
type Resizable interface {
	Resize(width, height int)
}

// PointerHandler 是一个可选接口，接收本帧的指针事件（在 Update 之前）
type PointerHandler interface {
	HandlePointer(ev utils.PointerEvent)
}

// SceneID 场景标识
type SceneID string

const (
	SceneProposal SceneID = "proposal"
	SceneCollage  SceneID = "collage"
	SceneQuiz     SceneID = "quiz"
)

// Navigator 场景跳转，由 SceneManager 实现
type Navigator interface {
	Goto(id SceneID)
}
