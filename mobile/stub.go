//go:build !mobile

// stub.go - 普通构建时的占位文件
//
// 实际的绑定入口在 mobile.go 和 embed.go 中，仅在 -tags mobile 时编译，
// 这样 go build ./... 和 go vet ./... 不需要复制资源也能通过。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
