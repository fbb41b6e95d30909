//go:build js

package app

import (
	"fmt"
	"log"
	"net/url"
	"syscall/js"

	"github.com/decker502/heartcollage/pkg/config"
	"github.com/decker502/heartcollage/pkg/embedded"
	"github.com/decker502/heartcollage/pkg/photos"
)

// newPhotoProvider 浏览器中优先从页面旁边获取照片，未配置时使用内嵌资源
func newPhotoProvider(cfg config.PhotosConfig) (photos.Provider, error) {
	if cfg.RemoteManifest == "" {
		fsys, err := embedded.FS("assets")
		if err != nil {
			return nil, err
		}
		return photos.NewFSProvider(fsys, cfg.Manifest), nil
	}

	base, err := url.Parse(js.Global().Get("location").Get("href").String())
	if err != nil {
		return nil, fmt.Errorf("invalid page url: %w", err)
	}
	ref, err := url.Parse(cfg.RemoteManifest)
	if err != nil {
		return nil, fmt.Errorf("invalid remote manifest %q: %w", cfg.RemoteManifest, err)
	}
	manifestURL := base.ResolveReference(ref).String()
	log.Printf("[App] 照片清单: %s", manifestURL)
	return photos.NewHTTPProvider(nil, manifestURL)
}
