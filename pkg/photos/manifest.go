package photos

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// DefaultParallelism 同时解码的照片数量上限
const DefaultParallelism = 4

// Manifest 照片清单
//
// 文件格式：
//
//	photos:
//	  - 01.jpg
//	  - trip/beach.png
//
// 路径相对于清单文件所在目录（或清单 URL）。
type Manifest struct {
	Photos []string `yaml:"photos"`
}

// ParseManifest 解析清单，忽略空白条目
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse photo manifest: %w", err)
	}
	refs := m.Photos[:0]
	for _, ref := range m.Photos {
		ref = strings.TrimSpace(ref)
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	m.Photos = refs
	return &m, nil
}

type fetchFunc func(ctx context.Context, ref string) (Photo, error)

// loadAll 并发获取所有照片，保持清单顺序，跳过失败的条目
func loadAll(ctx context.Context, refs []string, limit int, fetch fetchFunc) ([]Photo, error) {
	if limit <= 0 {
		limit = DefaultParallelism
	}

	results := make([]*Photo, len(refs))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			photo, err := fetch(ctx, ref)
			if err != nil {
				log.Printf("[Photos] 跳过照片 %s: %v", ref, err)
				return nil
			}
			results[i] = &photo
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	photos := make([]Photo, 0, len(refs))
	for _, p := range results {
		if p != nil {
			photos = append(photos, *p)
		}
	}
	log.Printf("[Photos] 加载完成: %d/%d", len(photos), len(refs))
	return photos, nil
}
