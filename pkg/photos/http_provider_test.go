package photos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPhotoServer(t *testing.T) *httptest.Server {
	t.Helper()
	one := encodePNG(t, 6, 3)

	r := chi.NewRouter()
	r.Get("/static/photos/manifest.yaml", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("photos:\n  - one.png\n  - gone.png\n  - /elsewhere/abs.png\n"))
	})
	r.Get("/static/photos/one.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(one)
	})
	r.Get("/elsewhere/abs.png", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(one)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProviderResolvesRelativeRefs(t *testing.T) {
	srv := newPhotoServer(t)

	provider, err := NewHTTPProvider(srv.Client(), srv.URL+"/static/photos/manifest.yaml")
	require.NoError(t, err)

	photos, err := provider.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 2, "404 photo is skipped")
	assert.Equal(t, srv.URL+"/static/photos/one.png", photos[0].ID)
	assert.Equal(t, srv.URL+"/elsewhere/abs.png", photos[1].ID)
	assert.InDelta(t, 2.0, photos[0].Aspect(), 1e-9)
}

func TestHTTPProviderManifestUnavailable(t *testing.T) {
	srv := newPhotoServer(t)

	provider, err := NewHTTPProvider(srv.Client(), srv.URL+"/nope.yaml")
	require.NoError(t, err)

	photos, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestNewHTTPProviderInvalidURL(t *testing.T) {
	_, err := NewHTTPProvider(nil, "://bad")
	assert.Error(t, err)
}
