// Package webhost 浏览器构建的本地开发服务器
//
// 提供承载页面、健康检查以及 dist 目录下的静态文件（main.wasm、wasm_exec.js、照片）。
package webhost

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

import (
	"io/fs"
	"mime"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config 承载页面参数
type Config struct {
	// Title 页面标题
	Title string
	// Lang html lang 属性
	Lang string
	// WasmPath wasm 模块地址
	WasmPath string
	// RequestLog 是否打印访问日志
	RequestLog bool
	// Timeout 单个请求的超时时间
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "heartcollage"
	}
	if c.Lang == "" {
		c.Lang = "ru"
	}
	if c.WasmPath == "" {
		c.WasmPath = "/main.wasm"
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}

func init() {
	_ = mime.AddExtensionType(".wasm", "application/wasm")
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".yaml", "application/yaml")
}

// NewRouter 创建路由
func NewRouter(dist fs.FS, cfg Config) http.Handler {
	cfg = cfg.withDefaults()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.RequestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Timeout))

	page := hostPage(cfg)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render(w, r, page)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	files := http.FileServer(http.FS(dist))
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		// wasm 构建不走浏览器缓存，方便反复编译
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})
	return r
}

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}
