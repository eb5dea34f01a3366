package tree

import (
	"fmt"
	"maps"
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dbnav/object-browser/internal/models"
)

// Registry maps a domain type name to its capabilities. It is shared by the
// store (classification, fetch urls) and the hierarchy projection.
type Registry struct {
	mu    sync.RWMutex
	types map[string]models.TypeInfo
}

func NewRegistry(types map[string]models.TypeInfo) *Registry {
	r := &Registry{types: make(map[string]models.TypeInfo, len(types))}
	maps.Copy(r.types, types)
	return r
}

// DefaultRegistry returns the database object types known out of the box.
func DefaultRegistry() *Registry {
	types := map[string]models.TypeInfo{
		"server_group": {HasID: true},
		"server":       {HasID: true, Connectable: true},
		"database":     {HasID: true, Connectable: true},
		"role":         {HasID: true},
		"tablespace":   {HasID: true},
		"schema":       {HasID: true},
		"catalog":      {HasID: true},
		"table":        {HasID: true},
		"partition":    {HasID: true},
		"view":         {HasID: true},
		"mview":        {HasID: true},
		"sequence":     {HasID: true},
		"function":     {HasID: true},
		"procedure":    {HasID: true},
		"column":       {HasID: true},
		"index":        {HasID: true},
		"constraints":  {HasID: false},
		"primary_key":  {HasID: true},
		"foreign_key":  {HasID: true},
		"trigger":      {HasID: true},
		"rule":         {HasID: true},
		"type":         {HasID: true},
		"domain":       {HasID: true},
		"extension":    {HasID: true},
	}

	for _, child := range []string{
		"database", "role", "tablespace", "schema", "catalog", "table", "partition",
		"view", "mview", "sequence", "function", "procedure", "column", "index",
		"trigger", "rule", "type", "domain", "extension",
	} {
		types["coll-"+child] = models.TypeInfo{IsCollection: true, CollectionType: child}
	}

	return NewRegistry(types)
}

// LoadFile merges the types declared in a yaml file over the current ones.
//
//	server:
//	  hasId: true
//	  connectable: true
//	coll-server:
//	  is_collection: true
//	  collection_type: server
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read type registry: %w", err)
	}

	var types map[string]models.TypeInfo
	if err := yaml.Unmarshal(data, &types); err != nil {
		return fmt.Errorf("failed to parse type registry %s: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	maps.Copy(r.types, types)

	zap.S().Named("registry").Infow("type registry loaded", "path", path, "types", len(types))
	return nil
}

func (r *Registry) Register(name string, info models.TypeInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = info
}

func (r *Registry) Lookup(name string) (models.TypeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.types[name]
	return info, ok
}

// HasID reports whether name is an identity-bearing type.
func (r *Registry) HasID(name string) bool {
	info, ok := r.Lookup(name)
	return ok && info.HasID
}

func (r *Registry) IsCollection(name string) bool {
	info, ok := r.Lookup(name)
	return ok && info.IsCollection
}

func (r *Registry) Connectable(name string) bool {
	info, ok := r.Lookup(name)
	return ok && info.Connectable
}
