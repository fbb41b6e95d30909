package photos

import (
	"context"
	"io/fs"
	"log"
	"path"
)

// FSProvider 从 fs.FS（通常是 embed.FS）读取清单和照片
type FSProvider struct {
	fsys         fs.FS
	manifestPath string
	parallelism  int
}

// NewFSProvider 创建文件系统照片来源
//
// 参数：
//   - fsys: 照片所在的文件系统
//   - manifestPath: 清单文件路径（如 "assets/photos/manifest.yaml"）
func NewFSProvider(fsys fs.FS, manifestPath string) *FSProvider {
	return &FSProvider{
		fsys:         fsys,
		manifestPath: manifestPath,
		parallelism:  DefaultParallelism,
	}
}

// Load 实现 Provider
//
// 清单缺失或损坏时返回空列表（拼贴画会使用备用色块）
func (p *FSProvider) Load(ctx context.Context) ([]Photo, error) {
	data, err := fs.ReadFile(p.fsys, p.manifestPath)
	if err != nil {
		log.Printf("[Photos] 无法读取清单 %s: %v", p.manifestPath, err)
		return nil, ctx.Err()
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		log.Printf("[Photos] %v", err)
		return nil, ctx.Err()
	}

	base := path.Dir(p.manifestPath)
	return loadAll(ctx, manifest.Photos, p.parallelism, func(ctx context.Context, ref string) (Photo, error) {
		f, err := p.fsys.Open(path.Join(base, ref))
		if err != nil {
			return Photo{}, err
		}
		defer f.Close()
		return decode(ref, f)
	})
}
