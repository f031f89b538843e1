package static

import (
	"embed"
	"io/fs"
)

// DefaultWebRoot names the embedded default site.
const DefaultWebRoot = "static"

//go:embed site
var siteFS embed.FS

// DefaultSite returns the embedded default site rooted at its top directory.
func DefaultSite() fs.FS {
	sub, err := fs.Sub(siteFS, "site")
	if err != nil {
		// "site" is a literal, embedded directory.
		panic(err)
	}
	return sub
}
