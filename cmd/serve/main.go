// serve 浏览器构建的本地开发服务器
//
// Usage:
//
//	GOOS=js GOARCH=wasm go build -o dist/main.wasm .
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" dist/
//	cp -r assets/photos dist/
//	go run ./cmd/serve --dist=dist
//
// Flags:
//
//	--addr <addr>     Listen address (default: :8080, or $PORT)
//	--dist <dir>      Directory with main.wasm, wasm_exec.js and photos
//	--config <path>   Applet config used for the page title (default: data/applet.yaml)
//	--verbose         Log every request
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/decker502/heartcollage/internal/webhost"
	"github.com/decker502/heartcollage/pkg/config"
)

var (
	addrFlag    = flag.String("addr", "", "Listen address (default :8080 or $PORT)")
	distFlag    = flag.String("dist", "dist", "Directory with the wasm build")
	configFlag  = flag.String("config", "data/applet.yaml", "Applet config used for the page title")
	verboseFlag = flag.Bool("verbose", false, "Log every request")
)

func main() {
	flag.Parse()

	addr := *addrFlag
	if addr == "" {
		addr = ":" + strings.TrimSpace(os.Getenv("PORT"))
		if addr == ":" {
			addr = ":8080"
		}
	}

	if _, err := os.Stat(*distFlag + "/main.wasm"); err != nil {
		log.Printf("[Serve] 警告: %s 下没有 main.wasm，请先执行 GOOS=js GOARCH=wasm go build", *distFlag)
	}

	title := config.Default().Title
	if cfg, err := config.Load(*configFlag); err != nil {
		log.Printf("[Serve] 读取配置失败，使用默认标题: %v", err)
	} else {
		title = cfg.Title
	}

	handler := webhost.NewRouter(os.DirFS(*distFlag), webhost.Config{
		Title:      title,
		RequestLog: *verboseFlag,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("[Serve] listening on http://localhost%s (dist=%s)", addr, *distFlag)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
