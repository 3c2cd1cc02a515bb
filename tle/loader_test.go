package tle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skypies/satplan"
)

func testLoader(serverURL, dir string) *Loader {
	l := NewLoader(dir, testLog)
	l.URL = serverURL + "/tle?CATNR={CATNR}"
	return l
}

func TestLoadCatalogueFetchesAndCaches(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(issTLE))
	}))
	defer server.Close()

	dir := t.TempDir()
	l := testLoader(server.URL, dir)

	cat,err := l.LoadCatalogue(context.Background(), []int{25544})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat[25544].Name != "ISS (ZARYA)" {
		t.Errorf("got %q", cat[25544].Name)
	}
	if hits != 1 {
		t.Errorf("expected 1 fetch, got %d", hits)
	}
	if _,err := os.Stat(filepath.Join(dir, "tle-CATNR-25544.txt")); err != nil {
		t.Errorf("cache file not written: %v", err)
	}

	// Second load comes from cache, not the network.
	if _,err := l.LoadCatalogue(context.Background(), []int{25544}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected cached hit, got %d fetches", hits)
	}
}

func TestLoadCatalogueRefetchesStale(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(issTLE))
	}))
	defer server.Close()

	dir := t.TempDir()
	l := testLoader(server.URL, dir)
	l.MaxAge = time.Nanosecond // everything is stale

	if _,err := l.LoadCatalogue(context.Background(), []int{25544}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _,err := l.LoadCatalogue(context.Background(), []int{25544}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if hits != 2 {
		t.Errorf("expected stale cache to refetch; got %d fetches", hits)
	}
}

func TestLoadCatalogueUnknownSatellite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("No GP data found"))
	}))
	defer server.Close()

	l := testLoader(server.URL, t.TempDir())
	_,err := l.LoadCatalogue(context.Background(), []int{99999})
	if !errors.Is(err, satplan.ErrUnknownSatellite) {
		t.Errorf("expected ErrUnknownSatellite, got %v", err)
	}
}

func TestLoadCatalogueUnreachableSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	l := testLoader(server.URL, t.TempDir())
	_,err := l.LoadCatalogue(context.Background(), []int{25544})
	if !errors.Is(err, satplan.ErrPredictorUnavailable) {
		t.Errorf("expected ErrPredictorUnavailable, got %v", err)
	}
}

func TestLoadCatalogueFallsBackToStaleCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "tle-CATNR-25544.txt")
	if err := os.WriteFile(path, []byte(issTLE), 0644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-30 * 24 * time.Hour)
	os.Chtimes(path, old, old)

	l := testLoader(server.URL, dir)
	cat,err := l.LoadCatalogue(context.Background(), []int{25544})
	if err != nil {
		t.Fatalf("expected stale-cache fallback, got %v", err)
	}
	if cat[25544].CatalogNumber != 25544 {
		t.Errorf("got %v", cat[25544])
	}
}
