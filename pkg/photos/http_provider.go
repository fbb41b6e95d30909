package photos

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// maxPhotoBytes 单张照片的下载上限
const maxPhotoBytes = 16 << 20

// HTTPProvider 通过 HTTP 获取清单和照片
//
// 浏览器构建（wasm）中照片与页面一起部署，net/http 会走 fetch API。
type HTTPProvider struct {
	client      *http.Client
	manifestURL *url.URL
	parallelism int
}

// NewHTTPProvider 创建 HTTP 照片来源，client 为 nil 时使用 http.DefaultClient
func NewHTTPProvider(client *http.Client, manifestURL string) (*HTTPProvider, error) {
	u, err := url.Parse(manifestURL)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest url %q: %w", manifestURL, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{
		client:      client,
		manifestURL: u,
		parallelism: DefaultParallelism,
	}, nil
}

// Load 实现 Provider
func (p *HTTPProvider) Load(ctx context.Context) ([]Photo, error) {
	data, err := p.fetch(ctx, p.manifestURL.String())
	if err != nil {
		log.Printf("[Photos] 无法获取清单 %s: %v", p.manifestURL, err)
		return nil, ctx.Err()
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		log.Printf("[Photos] %v", err)
		return nil, ctx.Err()
	}

	return loadAll(ctx, manifest.Photos, p.parallelism, func(ctx context.Context, ref string) (Photo, error) {
		refURL, err := url.Parse(ref)
		if err != nil {
			return Photo{}, err
		}
		abs := p.manifestURL.ResolveReference(refURL).String()
		body, err := p.fetch(ctx, abs)
		if err != nil {
			return Photo{}, err
		}
		return decodeBytes(abs, body)
	})
}

func (p *HTTPProvider) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", u, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
}
