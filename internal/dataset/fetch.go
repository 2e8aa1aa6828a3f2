package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// Loader reads GeoJSON datasets from local paths or http(s) URLs
type Loader struct {
	Client *http.Client
}

// NewLoader returns a loader whose remote fetches give up after timeout
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{Client: &http.Client{Timeout: timeout}}
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// read returns the raw bytes of a dataset
func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, errors.New("no source configured")
	}
	if !isRemote(src) {
		body, err := os.ReadFile(src)
		return body, errors.Wrapf(err, "failed to read %s", src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("User-Agent", "loop-map/1.0 (github.com/Zachdehooge/loop-map)")
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "HTTP GET %s failed", src)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		snip := body
		if len(snip) > 200 {
			snip = snip[:200]
		}
		return nil, errors.Errorf("%s returned HTTP %d: %s", src, resp.StatusCode, string(snip))
	}
	return body, nil
}

// fetch reads and parses a FeatureCollection
func (l *Loader) fetch(ctx context.Context, src string) (*geojson.FeatureCollection, error) {
	body, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse GeoJSON from %s", src)
	}
	return fc, nil
}

// propString returns a property as text. Numbers and booleans are formatted;
// missing or null values give "".
func propString(p geojson.Properties, key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}
