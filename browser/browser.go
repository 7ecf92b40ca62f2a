// Package browser defines the injected browser capability the rest of the
// application runs against. The wasm build binds it to the real window;
// everything else (including tests) can supply its own implementation.
package browser

// Storage is an origin-scoped persistent key-value surface (localStorage
// in the real browser). Values survive navigation and reload but not the
// user clearing site data. Implementations report underlying failures as
// errors; callers decide whether a failure is fatal.
type Storage interface {
	// GetItem returns the value for key. The second return is false when
	// the key is absent.
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Window is the full capability surface: storage plus location and
// history access.
type Window interface {
	Storage

	// CurrentURL returns the location currently shown in the address bar.
	CurrentURL() (string, error)

	// Navigate performs a full-page navigation to url, leaving the
	// application entirely.
	Navigate(url string) error

	// RewriteURL replaces the visible URL without reloading the page.
	RewriteURL(url string) error
}
