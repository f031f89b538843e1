// Package static resolves request paths to files under a web root.
//
// Resolution sanitizes the request path, consults an in-memory cache keyed by
// resource path, and falls back to reading the file system. Files smaller than
// the configured limit are cached for the life of the process; there is no
// eviction and no invalidation when the underlying file changes.
//
// The content type is derived from the file name suffix only.
//
// A small default site is embedded in the binary and served when no web root
// directory is configured.
package static
