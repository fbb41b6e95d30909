//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 Android 上的进度目录存在并可写
//
// gdata 在 Android 上把数据写到 /data/data/{package}/{appName}，
// 但不会预先创建目录。必须在 gdata.Open 之前调用。
func EnsureStorageDir(appName string) error {
	dir, err := androidStorageDir(appName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	_ = os.Remove(testFile)
	return nil
}

// StoragePath 进度目录（用于日志）
func StoragePath(appName string) string {
	dir, err := androidStorageDir(appName)
	if err != nil {
		return ""
	}
	return dir
}

func androidStorageDir(appName string) (string, error) {
	pkg, err := androidPackage()
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}
	return filepath.Join("/data/data", pkg, appName), nil
}

// androidPackage 从 /proc/self/cmdline 读取包名（第一个参数）
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	pkg := string(bytes.TrimSpace(data))
	if pkg == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return pkg, nil
}
