// Package report renders catalog listings as text or markdown via
// Go's text/template, the same YAML-configured-template shape the rest
// of this application layer uses for everything else it renders.
package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/textmode-tools/gosauce/internal/catalog"
)

// Renderer loads and executes report templates from a directory.
type Renderer struct {
	dir string
}

// New builds a Renderer that loads templates from dir.
func New(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Render parses and executes the named template file against data.
func (r *Renderer) Render(name string, data any) (string, error) {
	path := filepath.Join(r.dir, name)

	tmpl, err := template.New(filepath.Base(path)).Funcs(funcMap()).ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("parse report template %s: %w", path, err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render report template %s: %w", path, err)
	}
	return out.String(), nil
}

// ListingData is what `saucectl report` hands its template: the full
// catalog plus a few precomputed summary figures templates commonly
// want without repeating the arithmetic themselves.
type ListingData struct {
	Entries    []catalog.CatalogEntry
	TotalFiles int
	TotalBytes int64
}

// NewListingData summarizes entries for template consumption.
func NewListingData(entries []catalog.CatalogEntry) ListingData {
	var totalBytes int64
	for _, e := range entries {
		totalBytes += e.FileSize
	}
	return ListingData{
		Entries:    entries,
		TotalFiles: len(entries),
		TotalBytes: totalBytes,
	}
}

func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["humanSize"] = humanSize
	return fm
}

// humanSize renders a byte count the way a directory listing would:
// "512B", "3.4KB", "1.2MB", and so on.
func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(size)/float64(div), "KMGTPE"[exp])
}
