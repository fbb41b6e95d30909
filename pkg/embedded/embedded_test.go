package embedded

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func testFS() (fstest.MapFS, fstest.MapFS) {
	assets := fstest.MapFS{
		"assets/photos/manifest.yaml": {Data: []byte("photos: [a.png]\n")},
	}
	data := fstest.MapFS{
		"data/applet.yaml": {Data: []byte("title: test\n")},
	}
	return assets, data
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	assets, data := testFS()
	Init(assets, data)

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	initialized = false
}

// TestNotInitialized 测试未初始化时访问资源
func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := Open("assets/test.png"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v, want ErrNotInitialized", err)
	}
	if _, err := ReadFile("data/applet.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if Exists("assets/test.png") {
		t.Error("Expected Exists() to return false before Init()")
	}
	if _, err := FS("assets"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("FS() error = %v, want ErrNotInitialized", err)
	}
}

// TestReadFile 测试按前缀路由到对应的文件系统
func TestReadFile(t *testing.T) {
	assets, data := testFS()
	Init(assets, data)
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"data 前缀", "data/applet.yaml", "title: test\n", false},
		{"assets 前缀", "assets/photos/manifest.yaml", "photos: [a.png]\n", false},
		{"./ 前缀", "./data/applet.yaml", "title: test\n", false},
		{"未知前缀", "other/applet.yaml", "", true},
		{"文件不存在", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestFS 测试返回的文件系统保留路径前缀
func TestFS(t *testing.T) {
	assets, data := testFS()
	Init(assets, data)
	defer func() { initialized = false }()

	fsys, err := FS("assets")
	if err != nil {
		t.Fatalf("FS() error: %v", err)
	}
	if _, err := fs.Stat(fsys, "assets/photos/manifest.yaml"); err != nil {
		t.Errorf("Stat() error: %v", err)
	}
	if !Exists("assets/photos/manifest.yaml") {
		t.Error("Expected Exists() to return true")
	}
	if _, err := FS("photos"); err == nil {
		t.Error("Expected error for unknown prefix")
	}
}
