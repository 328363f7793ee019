package res

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ResourceType represents the type of resource
type ResourceType int

const (
	// ResourceTypeUnknown is an unknown resource type
	ResourceTypeUnknown ResourceType = iota
	// ResourceTypeFont is a font resource
	ResourceTypeFont
	// ResourceTypeConfig is a layout or settings file
	ResourceTypeConfig
	// ResourceTypeOther is any other resource
	ResourceTypeOther
)

// ErrNotFound is returned when a resource exists in no location
var ErrNotFound = errors.New("res: resource not found")

// maxRemoteSize caps downloads of remote resources
const maxRemoteSize = 64 << 20

// Resource represents a loaded resource
type Resource struct {
	URL      string
	Type     ResourceType
	Data     []byte
	MimeType string
}

// Loader loads local files, falling back to search paths, and remote
// http(s) resources. Results are cached by the requested name.
type Loader struct {
	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string

	// HTTP client for remote resources
	client *http.Client
}

// NewLoader creates a new resource loader
func NewLoader() *Loader {
	return &Loader{
		cache:       make(map[string]*Resource),
		searchPaths: []string{},
		client:      &http.Client{},
	}
}

// AddSearchPath adds a directory to search for local resources
func (l *Loader) AddSearchPath(path string) {
	if path == "" {
		return
	}
	l.searchPaths = append(l.searchPaths, path)
}

// SearchPaths returns the configured search directories
func (l *Loader) SearchPaths() []string {
	return append([]string(nil), l.searchPaths...)
}

// Load loads a resource from a URL or file path
func (l *Loader) Load(ctx context.Context, name string) (*Resource, error) {
	l.cacheLock.RLock()
	if res, ok := l.cache[name]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var (
		res *Resource
		err error
	)
	if isRemote(name) {
		res, err = l.loadRemote(ctx, name)
	} else {
		res, err = l.loadLocal(name)
	}
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[name] = res
	l.cacheLock.Unlock()

	return res, nil
}

func isRemote(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// loadRemote loads a resource from a remote URL
func (l *Loader) loadRemote(ctx context.Context, urlStr string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
	if err != nil {
		return nil, err
	}

	res := &Resource{
		URL:      urlStr,
		Data:     data,
		MimeType: resp.Header.Get("Content-Type"),
	}
	res.Type = determineResourceType(res.MimeType, urlStr)
	return res, nil
}

// loadLocal loads a resource from a local file
func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.loadFromSearchPaths(path)
		}
		return nil, err
	}
	return newLocalResource(path, data), nil
}

// loadFromSearchPaths tries to load a resource from the search paths
func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	baseFilename := filepath.Base(filename)

	for _, searchPath := range l.searchPaths {
		path := filepath.Join(searchPath, baseFilename)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return newLocalResource(path, data), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
}

func newLocalResource(path string, data []byte) *Resource {
	res := &Resource{URL: path, Data: data}
	res.MimeType = determineMimeType(path)
	res.Type = determineResourceType(res.MimeType, path)
	return res
}

// determineMimeType determines the MIME type of a file
func determineMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	case ".ttc":
		return "font/collection"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".toml":
		return "application/toml"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// determineResourceType determines the type of a resource
func determineResourceType(mimeType, path string) ResourceType {
	if strings.HasPrefix(mimeType, "font/") {
		return ResourceTypeFont
	}
	switch mimeType {
	case "application/yaml", "application/toml":
		return ResourceTypeConfig
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc":
		return ResourceTypeFont
	case ".yaml", ".yml", ".toml":
		return ResourceTypeConfig
	}
	return ResourceTypeOther
}

// LoadFont loads a font resource
func (l *Loader) LoadFont(ctx context.Context, name string) (*Resource, error) {
	res, err := l.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	if res.Type != ResourceTypeFont {
		return nil, fmt.Errorf("resource is not a font: %s", name)
	}

	return res, nil
}
