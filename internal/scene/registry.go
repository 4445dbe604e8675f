// Package scene dispatches parsed entities to gameplay constructors by
// classname.
package scene

import (
	"log"
	"sync"

	"map220-scene/internal/mapdoc"
)

// Spawnable is the capability a spawned entity exposes to the host.
type Spawnable interface {
	// ApplyKeyValue receives each of the entity's pairs before Spawn.
	ApplyKeyValue(key, value string)
	// Spawn runs once with the owning parsed entity.
	Spawn(ent *mapdoc.Entity) error
	// PostSpawn runs after every entity in the document has spawned.
	PostSpawn()
	// Update advances per-frame state.
	Update(dt float64)
	// PhysicsUpdate advances fixed-step physics state.
	PhysicsUpdate(dt float64)
	// Destroy releases the entity's resources.
	Destroy()
}

// Factory constructs a fresh Spawnable for one entity.
type Factory func() Spawnable

// Registry maps classnames to factories. Unknown classnames are simply
// absent: their entities stay in the document but are not spawned.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory

	// Warnf receives unknown-classname warnings. Defaults to log.Printf.
	Warnf func(format string, args ...any)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		Warnf:     log.Printf,
	}
}

// Register binds a classname to a factory, replacing any previous
// binding.
func (r *Registry) Register(classname string, f Factory) {
	r.mu.Lock()
	r.factories[classname] = f
	r.mu.Unlock()
}

// Lookup returns the factory for a classname.
func (r *Registry) Lookup(classname string) (Factory, bool) {
	r.mu.RLock()
	f, ok := r.factories[classname]
	r.mu.RUnlock()
	return f, ok
}

// SpawnAll instantiates every registered entity in document order:
// key/value application, then Spawn, then a PostSpawn pass once all
// entities exist. Entities whose classname is unregistered are logged
// and skipped.
func (r *Registry) SpawnAll(doc *mapdoc.Document) []Spawnable {
	var spawned []Spawnable
	for i := range doc.Entities {
		ent := &doc.Entities[i]
		f, ok := r.Lookup(ent.Classname)
		if !ok {
			r.Warnf("scene: unknown classname %q, entity not spawned", ent.Classname)
			continue
		}
		s := f()
		for k, v := range ent.Pairs {
			s.ApplyKeyValue(k, v)
		}
		if err := s.Spawn(ent); err != nil {
			r.Warnf("scene: spawn %q: %v", ent.Classname, err)
			continue
		}
		spawned = append(spawned, s)
	}
	for _, s := range spawned {
		s.PostSpawn()
	}
	return spawned
}
