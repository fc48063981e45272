// Package streaming orchestrates providers and resolvers to turn human titles into directly playable URLs.
package streaming

// ContentID is the opaque key identifying a playable title across caches and progress storage.
type ContentID uint64

// Provider locates the hoster page for a human-readable title on a catalog site.
type Provider interface {
	// Name returns the unique identifier for the catalog provider.
	Name() string

	// GetStreamPageURL derives the hoster page URL for the given title.
	GetStreamPageURL(title string) (string, error)
}

// Resolver turns a hoster page URL into a direct media URL.
type Resolver interface {
	// Name returns the unique identifier for the hoster resolver.
	Name() string

	// CanHandle reports whether this resolver understands the given page URL.
	CanHandle(url string) bool

	// Resolve fetches the page and extracts a directly playable URL.
	Resolve(url string) (string, error)
}
