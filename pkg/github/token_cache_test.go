package github

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestFileCache_RoundTrip(t *testing.T) {
	cache := &fileCache{path: filepath.Join(t.TempDir(), "github-token.json")}

	// No token yet
	got, err := cache.Get()
	if err != nil {
		t.Fatalf("Get() on empty cache error = %v", err)
	}
	if got != nil {
		t.Fatalf("Get() on empty cache = %v, want nil", got)
	}

	token := &oauth2.Token{
		AccessToken: "gho_cached",
		TokenType:   "bearer",
		Expiry:      time.Now().Add(time.Hour).Truncate(time.Second),
	}
	if err := cache.Set(token); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err = cache.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.AccessToken != token.AccessToken || got.TokenType != token.TokenType {
		t.Errorf("Get() = %+v, want %+v", got, token)
	}
	if !got.Valid() {
		t.Errorf("cached token should still be valid")
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, err = cache.Get()
	if err != nil || got != nil {
		t.Errorf("Get() after Clear() = (%v, %v), want (nil, nil)", got, err)
	}

	// Clearing twice is fine
	if err := cache.Clear(); err != nil {
		t.Errorf("Clear() on empty cache error = %v", err)
	}
}
