//go:build e2e

package browser

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestCaptureBreakpoints(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html><html lang="en"><body><h1>webcompat</h1></body></html>`))
	}))
	defer ts.Close()

	ipad, _ := ProfileByName("ipad")
	chrome, _ := ProfileByName("chrome")
	shots, err := Capture(ctx, ts.URL, t.TempDir(), Options{}, chrome, ipad)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(shots) != 2*len(Breakpoints()) {
		t.Fatalf("expected %d shots, got %d", 2*len(Breakpoints()), len(shots))
	}

	pngMagic := []byte("\x89PNG")
	for _, s := range shots {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			t.Fatalf("read %s: %v", s.Path, err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Errorf("%s is not a PNG", s.Path)
		}
	}
}
