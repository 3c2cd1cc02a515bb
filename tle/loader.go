package tle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skypies/satplan"
)

const (
	DefaultURL    = "https://celestrak.org/NORAD/elements/gp.php?CATNR={CATNR}&FORMAT=tle"
	DefaultMaxAge = 7 * 24 * time.Hour // reload elements older than a week
)

// Loader fetches per-satellite TLEs over HTTP, caching each one in a plain
// file (tle-CATNR-N.txt) under Dir.
type Loader struct {
	URL    string        // source URL; "{CATNR}" is replaced per satellite
	Dir    string        // cache directory
	MaxAge time.Duration // cache files older than this are refetched
	Client *http.Client
	Log    *logrus.Logger
}

func NewLoader(dir string, log *logrus.Logger) *Loader {
	return &Loader{
		URL:    DefaultURL,
		Dir:    dir,
		MaxAge: DefaultMaxAge,
		Client: &http.Client{Timeout: 30 * time.Second},
		Log:    log,
	}
}

// LoadCatalogue gathers a TLE for every catalogue number, from cache where
// fresh enough, from the network otherwise. A satellite for which no TLE
// exists anywhere is a configuration error, not a quiet sky; it aborts the
// load with satplan.ErrUnknownSatellite.
func (l *Loader) LoadCatalogue(ctx context.Context, catnums []int) (Catalogue, error) {
	cat := Catalogue{}

	for _,catnum := range catnums {
		entry,err := l.loadOne(ctx, catnum)
		if err != nil {
			return nil, err
		}
		cat[catnum] = entry
	}

	return cat, nil
}

func (l *Loader) loadOne(ctx context.Context, catnum int) (Entry, error) {
	path := filepath.Join(l.Dir, fmt.Sprintf("tle-CATNR-%d.txt", catnum))

	data,cachedAt,err := l.readCache(path)
	stale := err != nil || time.Since(cachedAt) > l.MaxAge
	if stale {
		if err == nil {
			l.Log.WithField("catnr", catnum).Info("TLE data outdated, reloading")
		}
		if fresh,ferr := l.fetch(ctx, catnum); ferr == nil {
			data = fresh
			if werr := l.writeCache(path, fresh); werr != nil {
				l.Log.WithError(werr).Warn("could not write TLE cache file")
			}
		} else if errors.Is(ferr, satplan.ErrUnknownSatellite) {
			return Entry{}, ferr
		} else if err != nil {
			// No cache and no network; nothing to predict with.
			return Entry{}, fmt.Errorf("catnr %d: %v: %w", catnum, ferr, satplan.ErrPredictorUnavailable)
		} else {
			l.Log.WithField("catnr", catnum).WithError(ferr).Warn("TLE refetch failed, using stale cache")
		}
	}

	entries,err := Parse(strings.NewReader(string(data)), l.Log)
	if err != nil {
		return Entry{}, fmt.Errorf("catnr %d: %w", catnum, err)
	}
	for _,e := range entries {
		if e.CatalogNumber == catnum {
			return e, nil
		}
	}

	// The source answered but has never heard of this satellite.
	return Entry{}, fmt.Errorf("no TLE data for catalogue no %d: %w", catnum, satplan.ErrUnknownSatellite)
}

func (l *Loader) fetch(ctx context.Context, catnum int) ([]byte, error) {
	url := strings.Replace(l.URL, "{CATNR}", fmt.Sprintf("%d", catnum), 1)

	req,err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp,err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	body,err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Celestrak returns 200 with a prose body for unknown catalogue numbers.
	if strings.Contains(string(body), "No GP data found") {
		return nil, fmt.Errorf("no TLE data for catalogue no %d: %w", catnum, satplan.ErrUnknownSatellite)
	}

	return body, nil
}

func (l *Loader) readCache(path string) ([]byte, time.Time, error) {
	fi,err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	data,err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	return data, fi.ModTime(), nil
}

func (l *Loader) writeCache(path string, data []byte) error {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
