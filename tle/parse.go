package tle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Parse reads 3-line NORAD TLE format from r. Malformed entries are skipped
// with a warning rather than failing the whole catalogue.
func Parse(r io.Reader, log *logrus.Logger) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	lines := []string{}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE data: %w", err)
	}

	entries := []Entry{}
	for i := 0; i+2 < len(lines); {
		name,line1,line2 := lines[i], lines[i+1], lines[i+2]

		if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
			log.WithField("name", name).Warn("skipping malformed TLE entry")
			i++
			continue
		}
		if len(line1) < 32 {
			log.WithField("name", name).Warn("skipping TLE entry with short line1")
			i += 3
			continue
		}

		// NORAD number lives in line1 cols 3-7.
		catnum,err := strconv.Atoi(strings.TrimSpace(line1[2:7]))
		if err != nil {
			log.WithField("name", name).Warn("skipping TLE entry with bad catalogue number")
			i += 3
			continue
		}

		epoch,err := parseEpoch(strings.TrimSpace(line1[18:32]))
		if err != nil {
			log.WithField("name", name).WithError(err).Warn("skipping TLE entry with bad epoch")
			i += 3
			continue
		}

		entries = append(entries, Entry{
			CatalogNumber: catnum,
			Name:          strings.TrimSpace(name),
			Epoch:         epoch,
			Line1:         line1,
			Line2:         line2,
		})
		i += 3
	}

	return entries, nil
}

// parseEpoch decodes the TLE epoch field, YYDDD.DDDDDDDD. Two-digit years
// 57-99 are the 1900s, everything else the 2000s.
func parseEpoch(s string) (time.Time, error) {
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("epoch %q too short", s)
	}

	year,err := strconv.Atoi(s[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("epoch year %q: %w", s[:2], err)
	}
	if year >= 57 {
		year += 1900
	} else {
		year += 2000
	}

	dayOfYear,err := strconv.ParseFloat(s[2:], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("epoch day %q: %w", s[2:], err)
	}

	// Day 1 is Jan 1.
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return t.Add(time.Duration((dayOfYear - 1) * float64(24*time.Hour))), nil
}
