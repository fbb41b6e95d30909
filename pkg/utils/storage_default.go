//go:build !android

package utils

// EnsureStorageDir 非 Android 平台无需处理，gdata 会自己创建目录
func EnsureStorageDir(appName string) error {
	return nil
}

// StoragePath 非 Android 平台由 gdata 决定，返回空字符串
func StoragePath(appName string) string {
	return ""
}
