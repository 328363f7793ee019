package res

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func writeFont(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestValidateFont(t *testing.T) {
	family, err := ValidateFont(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "Go", family)

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0, 1}},
		{"cff", append([]byte("OTTO"), make([]byte, 32)...)},
		{"collection", append([]byte("ttcf"), make([]byte, 32)...)},
		{"garbage", []byte("this is not a font at all")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFont(tt.data)
			assert.ErrorIs(t, err, ErrUnsupportedFont)
		})
	}
}

func TestResolveExplicit(t *testing.T) {
	dir := t.TempDir()
	regular := writeFont(t, dir, "go-regular.ttf", goregular.TTF)
	bold := writeFont(t, dir, "go-bold.ttf", gobold.TTF)

	r := NewFontResolver(WithCandidates(), WithBoldCandidates())
	set, err := r.Resolve(context.Background(), regular, bold)
	require.NoError(t, err)

	require.NotNil(t, set.Regular)
	require.NotNil(t, set.Bold)
	assert.Equal(t, "Go", set.Regular.Name)
	assert.NotEqual(t, set.Regular.Name, set.Bold.Name, "faces get distinct names")
	assert.Equal(t, regular, set.Regular.Path)
	assert.Len(t, set.Faces(), 2)
}

func TestResolveExplicitMissing(t *testing.T) {
	r := NewFontResolver(WithCandidates(), WithBoldCandidates())
	_, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "nope.ttf"), "")
	assert.ErrorIs(t, err, ErrFontNotFound)
}

func TestResolveExplicitInvalid(t *testing.T) {
	path := writeFont(t, t.TempDir(), "broken.ttf", []byte("not a font"))
	r := NewFontResolver(WithCandidates(), WithBoldCandidates())
	_, err := r.Resolve(context.Background(), path, "")
	assert.ErrorIs(t, err, ErrUnsupportedFont)
}

func TestResolveFallsBackToDefault(t *testing.T) {
	r := NewFontResolver(WithCandidates(filepath.Join(t.TempDir(), "missing.ttf")), WithBoldCandidates())
	set, err := r.Resolve(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, set.Regular)
	assert.Nil(t, set.Bold)
	assert.Equal(t, "Helvetica", set.Names().Regular)
}

func TestResolveProbesFontDirs(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "ipaexg-broken.ttf", []byte("junk"))
	writeFont(t, dir, "ipaexg.ttf", goregular.TTF)

	r := NewFontResolver(WithFontDirs(dir), WithCandidates(), WithBoldCandidates())
	set, err := r.Resolve(context.Background(), "", "")
	require.NoError(t, err)
	require.NotNil(t, set.Regular)
	assert.Equal(t, filepath.Join(dir, "ipaexg.ttf"), set.Regular.Path)
}

func TestLoaderSearchPaths(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "face.ttf", goregular.TTF)

	l := NewLoader()
	l.AddSearchPath(dir)
	res, err := l.LoadFont(context.Background(), "elsewhere/face.ttf")
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeFont, res.Type)
	assert.Equal(t, filepath.Join(dir, "face.ttf"), res.URL)

	_, err = l.Load(context.Background(), "missing.yaml")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveRemoteFont(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/face.ttf":
			w.Header().Set("Content-Type", "font/ttf")
			_, _ = w.Write(goregular.TTF)
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := NewFontResolver(WithCandidates(), WithBoldCandidates())
	url := srv.URL + "/face.ttf"
	set, err := r.Resolve(context.Background(), url, "")
	require.NoError(t, err)
	require.NotNil(t, set.Regular)
	assert.Equal(t, url, set.Regular.Path)
	assert.Equal(t, goregular.TTF, set.Regular.Data)
	assert.Nil(t, set.Bold)

	_, err = r.Resolve(context.Background(), url, url)
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load(), "remote fonts are cached")

	_, err = r.Resolve(context.Background(), srv.URL+"/missing.ttf", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = r.Resolve(context.Background(), srv.URL+"/page", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a font")
}
