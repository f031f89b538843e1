package static

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrNotFound is returned when no file exists at the resolved path.
	ErrNotFound = errors.New("static: file not found")

	// ErrRead is returned when a file exists but cannot be read.
	ErrRead = errors.New("static: read failed")
)

// CacheObserver is notified of cache activity. Implementations must be cheap;
// they run on the serving path.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
	CacheStored(entries int, bytes int64)
}

// File is a resolved static file.
type File struct {
	ResourcePath string
	Data         []byte
	MIMEType     string
	FromCache    bool
}

// Resolver maps request paths to files under a web root.
type Resolver struct {
	fsys     fs.FS
	webRoot  string
	cache    *Cache
	observer CacheObserver
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCacheMaxBytes sets the exclusive size bound for cached files.
func WithCacheMaxBytes(n int) Option {
	return func(r *Resolver) {
		r.cache = NewCache(n)
	}
}

// WithObserver registers a cache observer.
func WithObserver(o CacheObserver) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// NewResolver creates a resolver reading from fsys, which must be rooted at
// the web root. webRoot names that root; it prefixes every resource path and
// so every cache key.
func NewResolver(fsys fs.FS, webRoot string, opts ...Option) *Resolver {
	r := &Resolver{
		fsys:    fsys,
		webRoot: strings.TrimSuffix(webRoot, "/"),
		cache:   NewCache(DefaultCacheMaxBytes),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WebRoot returns the web root name.
func (r *Resolver) WebRoot() string {
	return r.webRoot
}

// Cache returns the resolver's file cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// SanitizePath removes every ".." substring, collapses "//" to "/" and strips
// a single leading "/".
func SanitizePath(p string) string {
	p = strings.ReplaceAll(p, "..", "")
	p = strings.ReplaceAll(p, "//", "/")
	return strings.TrimPrefix(p, "/")
}

// Resolve returns the file for requestPath.
//
// It returns ErrNotFound when nothing readable exists under the web root
// (including directories and names that are not valid inside the root), and
// an error wrapping ErrRead when the file exists but reading it fails.
func (r *Resolver) Resolve(requestPath string) (*File, error) {
	name := SanitizePath(requestPath)
	resourcePath := r.webRoot + "/" + name

	if data, ok := r.cache.Get(resourcePath); ok {
		if r.observer != nil {
			r.observer.CacheHit()
		}
		return &File{
			ResourcePath: resourcePath,
			Data:         data,
			MIMEType:     MIMEType(name),
			FromCache:    true,
		}, nil
	}
	if r.observer != nil {
		r.observer.CacheMiss()
	}

	data, err := r.read(name)
	if err != nil {
		return nil, err
	}

	if r.cache.Put(resourcePath, data) && r.observer != nil {
		r.observer.CacheStored(r.cache.Len(), r.cache.Size())
	}

	return &File{
		ResourcePath: resourcePath,
		Data:         data,
		MIMEType:     MIMEType(name),
	}, nil
}

func (r *Resolver) read(name string) ([]byte, error) {
	// fs.FS names never escape the root; anything else cannot exist in it.
	if !fs.ValidPath(name) || name == "." {
		return nil, ErrNotFound
	}

	info, err := fs.Stat(r.fsys, name)
	if err != nil {
		return nil, classify(name, err)
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}

	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, classify(name, err)
	}
	return data, nil
}

func classify(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s: %w", ErrRead, name, err)
}
