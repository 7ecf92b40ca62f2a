package windowfake

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/geeom/personal-assistant-web/browser"
)

var _ browser.Window = (*FakeWindow)(nil)

// FakeWindow is an in-memory stand-in for the browser capability, used by
// tests and by development harnesses running outside wasm.
type FakeWindow struct {
	lock        sync.RWMutex
	items       map[string]string
	url         string
	navigations []string
	storageErr  error
}

func New(currentURL string) *FakeWindow {
	return &FakeWindow{
		items: make(map[string]string),
		url:   currentURL,
	}
}

// FailStorage makes every storage operation return err until called again
// with nil. Existing items are kept but unreadable while failing.
func (w *FakeWindow) FailStorage(err error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.storageErr = err
}

func (w *FakeWindow) GetItem(key string) (string, bool, error) {
	w.lock.RLock()
	defer w.lock.RUnlock()
	if w.storageErr != nil {
		return "", false, w.storageErr
	}
	value, ok := w.items[key]
	return value, ok, nil
}

func (w *FakeWindow) SetItem(key, value string) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.storageErr != nil {
		return w.storageErr
	}
	w.items[key] = value
	return nil
}

func (w *FakeWindow) RemoveItem(key string) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.storageErr != nil {
		return w.storageErr
	}
	delete(w.items, key)
	return nil
}

func (w *FakeWindow) CurrentURL() (string, error) {
	w.lock.RLock()
	defer w.lock.RUnlock()
	if w.url == "" {
		return "", errors.New("no current url")
	}
	return w.url, nil
}

// Navigate records the destination instead of leaving the page.
func (w *FakeWindow) Navigate(url string) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.navigations = append(w.navigations, url)
	w.url = url
	return nil
}

func (w *FakeWindow) RewriteURL(url string) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.url = url
	return nil
}

// Navigations returns every full-page navigation requested so far.
func (w *FakeWindow) Navigations() []string {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return append([]string(nil), w.navigations...)
}

// SetURL moves the fake address bar without recording a navigation,
// simulating the provider redirecting back to the application.
func (w *FakeWindow) SetURL(url string) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.url = url
}
