//go:build !js

package app

import (
	"github.com/decker502/heartcollage/pkg/config"
	"github.com/decker502/heartcollage/pkg/embedded"
	"github.com/decker502/heartcollage/pkg/photos"
)

// newPhotoProvider 桌面和移动端从内嵌资源读取照片
func newPhotoProvider(cfg config.PhotosConfig) (photos.Provider, error) {
	fsys, err := embedded.FS("assets")
	if err != nil {
		return nil, err
	}
	return photos.NewFSProvider(fsys, cfg.Manifest), nil
}
