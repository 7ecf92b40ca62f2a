//go:build js && wasm

package browser

import (
	"syscall/js"

	"github.com/pkg/errors"
)

// JSWindow binds the Window capability to the real browser globals.
type JSWindow struct {
	window js.Value
}

var _ Window = (*JSWindow)(nil)

func NewJSWindow() *JSWindow {
	return &JSWindow{window: js.Global().Get("window")}
}

// localStorage access can throw (e.g. SecurityError when cookies are
// blocked), which syscall/js surfaces as a panic. jsCall converts that
// back into an error so storage failures stay recoverable.
func jsCall(fn func() js.Value) (v js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("browser call failed: %v", r)
		}
	}()
	return fn(), nil
}

func (w *JSWindow) localStorage() (js.Value, error) {
	storage := w.window.Get("localStorage")
	if !storage.Truthy() {
		return js.Value{}, errors.New("localStorage unavailable")
	}
	return storage, nil
}

func (w *JSWindow) GetItem(key string) (string, bool, error) {
	storage, err := w.localStorage()
	if err != nil {
		return "", false, err
	}
	v, err := jsCall(func() js.Value { return storage.Call("getItem", key) })
	if err != nil {
		return "", false, err
	}
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (w *JSWindow) SetItem(key, value string) error {
	storage, err := w.localStorage()
	if err != nil {
		return err
	}
	_, err = jsCall(func() js.Value { return storage.Call("setItem", key, value) })
	return err
}

func (w *JSWindow) RemoveItem(key string) error {
	storage, err := w.localStorage()
	if err != nil {
		return err
	}
	_, err = jsCall(func() js.Value { return storage.Call("removeItem", key) })
	return err
}

func (w *JSWindow) CurrentURL() (string, error) {
	href := w.window.Get("location").Get("href")
	if !href.Truthy() {
		return "", errors.New("location unavailable")
	}
	return href.String(), nil
}

func (w *JSWindow) Navigate(url string) error {
	_, err := jsCall(func() js.Value {
		w.window.Get("location").Set("href", url)
		return js.Undefined()
	})
	return err
}

func (w *JSWindow) RewriteURL(url string) error {
	_, err := jsCall(func() js.Value {
		return w.window.Get("history").Call("replaceState", js.Null(), "", url)
	})
	return err
}
