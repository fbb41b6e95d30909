package webhost

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDist() fstest.MapFS {
	return fstest.MapFS{
		"main.wasm":            {Data: []byte("\x00asm")},
		"wasm_exec.js":         {Data: []byte("// go wasm runtime")},
		"photos/manifest.yaml": {Data: []byte("photos:\n  - 01.png\n")},
		"photos/01.png":        {Data: []byte("png")},
	}
}

func get(t *testing.T, h http.Handler, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func TestHostPage(t *testing.T) {
	h := NewRouter(testDist(), Config{Title: "Валентинка <3"})

	resp := get(t, h, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "<title>Валентинка &lt;3</title>")
	assert.Contains(t, page, `data-wasm="/main.wasm"`)
	assert.Contains(t, page, `fetch(wasm)`)
	assert.Contains(t, page, `src="/wasm_exec.js"`)
	assert.Contains(t, page, `lang="ru"`)
}

func TestHostPageEscapesAttributes(t *testing.T) {
	h := NewRouter(testDist(), Config{Lang: `en" onload="x`, WasmPath: `/app.wasm?v="1"`})

	body, err := io.ReadAll(get(t, h, "/").Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, `lang="en&#34; onload=&#34;x"`)
	assert.Contains(t, page, `data-wasm="/app.wasm?v=&#34;1&#34;"`)
	assert.NotContains(t, page, `onload="x"`)
}

func TestHealthz(t *testing.T) {
	resp := get(t, NewRouter(testDist(), Config{}), "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestStaticFiles(t *testing.T) {
	h := NewRouter(testDist(), Config{})

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
	}{
		{"wasm 模块", "/main.wasm", http.StatusOK, "application/wasm"},
		{"wasm 运行时", "/wasm_exec.js", http.StatusOK, "application/javascript"},
		{"照片清单", "/photos/manifest.yaml", http.StatusOK, "application/yaml"},
		{"不存在的文件", "/missing.png", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, h, tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.contentType != "" {
				assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType),
					"Content-Type = %q", resp.Header.Get("Content-Type"))
				assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
			}
		})
	}
}

func TestCustomWasmPath(t *testing.T) {
	resp := get(t, NewRouter(testDist(), Config{WasmPath: "/build/app.wasm"}), "/")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `fetch("/build/app.wasm")`)
}
