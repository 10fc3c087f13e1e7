// Package catalog fetches bin manifests from a directory or an HTTP base URL
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"koreanvocab/internal/domain"
)

// DefaultTimeout bounds a single manifest fetch over HTTP
const DefaultTimeout = 10 * time.Second

// Loader fetches the catalog of one bin
type Loader interface {
	Load(ctx context.Context, bin domain.Bin) (*domain.Catalog, error)
}

// NewLoader picks an HTTP loader for http(s) sources and a directory loader otherwise
func NewLoader(source string) Loader {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPLoader(source, nil)
	}
	return NewDirLoader(source)
}

// DirLoader reads manifests from a local directory
type DirLoader struct {
	dir string
}

// NewDirLoader creates a loader rooted at dir
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{dir: dir}
}

// Load reads <dir>/<bin manifest>
func (l *DirLoader) Load(ctx context.Context, bin domain.Bin) (*domain.Catalog, error) {
	path := filepath.Join(l.dir, bin.ManifestFile())
	if err := ctx.Err(); err != nil {
		return nil, &domain.LoadError{Bin: bin, Source: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.LoadError{Bin: bin, Source: path, Err: err}
	}

	cat, err := Parse(bin, data)
	if err != nil {
		return nil, &domain.LoadError{Bin: bin, Source: path, Err: err}
	}
	return cat, nil
}

// HTTPLoader fetches manifests from a base URL
type HTTPLoader struct {
	baseURL string
	client  *http.Client
}

// NewHTTPLoader creates a loader for baseURL. A nil client gets DefaultTimeout.
func NewHTTPLoader(baseURL string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPLoader{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Load GETs <baseURL>/<bin manifest>
func (l *HTTPLoader) Load(ctx context.Context, bin domain.Bin) (*domain.Catalog, error) {
	url := l.baseURL + "/" + bin.ManifestFile()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.LoadError{Bin: bin, Source: url, Err: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &domain.LoadError{Bin: bin, Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.LoadError{Bin: bin, Source: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.LoadError{Bin: bin, Source: url, Err: err}
	}

	cat, err := Parse(bin, data)
	if err != nil {
		return nil, &domain.LoadError{Bin: bin, Source: url, Err: err}
	}
	return cat, nil
}

var errNoCategories = errors.New("manifest lists no categories")

// Parse decodes and checks a manifest. Words of categories the manifest
// does not list are dropped.
func Parse(bin domain.Bin, data []byte) (*domain.Catalog, error) {
	var raw domain.Catalog
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(raw.Categories) == 0 {
		return nil, errNoCategories
	}

	cat := &domain.Catalog{
		Bin:        bin,
		Categories: make([]string, 0, len(raw.Categories)),
		Words:      make(map[string][]domain.WordRecord, len(raw.Categories)),
	}
	for _, name := range raw.Categories {
		if name == "" {
			return nil, errors.New("manifest lists an empty category name")
		}
		if cat.HasCategory(name) {
			continue
		}
		words := raw.Words[name]
		for i, w := range words {
			if w.Index == "" || w.English == "" || w.Korean == "" {
				return nil, fmt.Errorf("category %q record %d: index, english and korean are required", name, i)
			}
		}
		cat.Categories = append(cat.Categories, name)
		cat.Words[name] = words
	}
	return cat, nil
}
