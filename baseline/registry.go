// Package baseline owns the feature registry: an immutable, queryable index
// of web-platform feature records built from the embedded dataset. A registry
// is constructed once, is safe for concurrent reads and is passed explicitly
// into every consumer - there is no package-level singleton.
package baseline

import (
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Well-known synonyms that have no direct dataset key. Kept small and static,
// everything else is derived from the dataset itself.
var aliases = map[string]string{
	"flex":            "flexbox",
	"css-flexbox":     "flexbox",
	"css-grid":        "grid",
	"css-variables":   "custom-properties",
	"css-nesting":     "nesting",
	"?.":              "optional-chaining",
	"??":              "nullish-coalescing",
	"=>":              "arrow-functions",
	"...":             "spread",
	"**":              "exponentiation",
	"raf":             "request-animation-frame",
	"sse":             "server-sent-events",
	"websocket":       "websockets",
	"position-sticky": "sticky-positioning",
	"layer":           "cascade-layers",
	"container-units": "container-queries",
	"cqw-unit":        "container-queries",
	"cqh-unit":        "container-queries",
	"cqi-unit":        "container-queries",
	"cqb-unit":        "container-queries",
}

// cssNamespaces are key prefixes whose bare tail is also indexed, so that
// "transform" finds "css.properties.transform" without spelling the namespace.
var cssNamespaces = []string{
	"css.properties.",
	"css.at-rules.",
	"css.selectors.",
	"css.types.length.",
	"css.types.color.",
	"css.types.",
}

// Registry is the immutable feature index. All lookup maps are fully built by
// NewRegistry and only read afterwards.
type Registry struct {
	records []*Record
	byID    map[string]*Record
	index   map[string]*Record

	// sorted copies of index keys and display names back the substring
	// fallback, giving it a documented order independent of map iteration.
	sortedKeys  []string
	sortedNames []string
	byName      map[string]*Record

	log *zap.Logger
}

// NewRegistry builds the registry from the embedded dataset. This is the only
// fatal spot of the engine: without a registry no query can be answered.
func NewRegistry(log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}

	records, err := loadDataset()
	if err != nil {
		return nil, err
	}

	r := &Registry{
		records: records,
		byID:    make(map[string]*Record, len(records)),
		index:   make(map[string]*Record),
		byName:  make(map[string]*Record, len(records)),
		log:     log.Named("registry"),
	}

	// Dataset file order decides who wins on key collisions, first feature
	// to claim a key keeps it.
	for _, rec := range records {
		r.byID[rec.ID] = rec
		r.add(rec.ID, rec)
		name := strings.ToLower(rec.Name)
		r.add(name, rec)
		r.add(slug.Make(rec.Name), rec)
		if _, dup := r.byName[name]; !dup {
			r.byName[name] = rec
		}
		for _, key := range rec.Keys {
			r.add(key, rec)
			for _, ns := range cssNamespaces {
				if bare, ok := strings.CutPrefix(key, ns); ok {
					r.add(bare, rec)
					if i := strings.LastIndexByte(bare, '.'); i >= 0 {
						r.add(bare[i+1:], rec)
					}
					break
				}
			}
		}
	}
	for token, id := range aliases {
		rec, ok := r.byID[id]
		if !ok {
			r.log.Warn("Alias points to unknown feature", zap.String("alias", token), zap.String("feature", id))
			continue
		}
		r.add(token, rec)
	}

	r.sortedKeys = make([]string, 0, len(r.index))
	for k := range r.index {
		r.sortedKeys = append(r.sortedKeys, k)
	}
	sort.Strings(r.sortedKeys)

	r.sortedNames = make([]string, 0, len(r.byName))
	for n := range r.byName {
		r.sortedNames = append(r.sortedNames, n)
	}
	sort.Strings(r.sortedNames)

	r.log.Debug("Registry built", zap.Int("features", len(records)), zap.Int("keys", len(r.index)))
	return r, nil
}

func (r *Registry) add(key string, rec *Record) {
	if len(key) == 0 {
		return
	}
	if _, exists := r.index[key]; !exists {
		r.index[key] = rec
	}
}

// Len returns the number of feature records in the registry.
func (r *Registry) Len() int {
	return len(r.records)
}

// Record returns the feature record for a canonical id.
func (r *Registry) Record(id string) (*Record, bool) {
	rec, ok := r.byID[id]
	return rec, ok
}
