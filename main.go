// Command heartcollage 情人节贺卡小程序的桌面/浏览器入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose         Enable verbose logging
//	--config <path>   Load applet config from disk instead of the embedded data/applet.yaml
//	--seed <n>        Seed for the collage scatter (0 = random)
//	--scene <id>      Start scene: proposal, collage or quiz (default: from saved progress)
//
// Controls:
//
//	F11  - Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/decker502/heartcollage/pkg/app"
	"github.com/decker502/heartcollage/pkg/embedded"
	"github.com/decker502/heartcollage/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag  = flag.String("config", "", "Path to applet config (default: embedded data/applet.yaml)")
	seedFlag    = flag.Uint64("seed", 0, "Seed for the collage scatter (0 = random)")
	sceneFlag   = flag.String("scene", "", "Start scene: proposal, collage or quiz")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
		Start:      game.SceneID(*sceneFlag),
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer a.Close()

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle(a.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
