package api

// Query and list limits.
const (
	// MaxSearchLimit caps the page size of palette search.
	MaxSearchLimit = 100
)

// Cache-Control header values.
const (
	CacheOneDayPrivate = "private, max-age=86400"
	CacheNoStore       = "no-store"
)
