// Package extractors turns raw uploaded bytes into processed content the
// chunking stage can consume. Extractors are selected by file extension;
// the registry is the single routing point for per-filetype pipelines.
package extractors

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry implements ExtractorRegistry with extension-based routing.
// Later registrations win for contested extensions.
type Registry struct {
	mu          sync.RWMutex
	byExtension map[string]driven.Extractor
}

// NewRegistry creates a new extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: make(map[string]driven.Extractor),
	}
}

// Register registers an extractor for every extension it reports.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.Extensions() {
		r.byExtension[normalizeExtension(ext)] = extractor
	}
}

// Get retrieves the extractor for a file extension.
// Returns domain.ErrUnsupportedType if none is registered.
func (r *Registry) Get(extension string) (driven.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	extractor, ok := r.byExtension[normalizeExtension(extension)]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor for %q", domain.ErrUnsupportedType, extension)
	}
	return extractor, nil
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DefaultRegistry creates a registry with the built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewTextExtractor())
	r.Register(NewProcessedJSONExtractor())
	return r
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
