package trace

// Identifier bases for the two id spaces the viewer format expects. Modules
// occupy pid-space, tracks tid-space; the counters never collide.
const (
	moduleIDBase int64 = 100000
	trackIDBase  int64 = 1000
)

// DefaultModule is the module tracks are registered under when no module is
// supplied.
const DefaultModule = "default"

// Module is a top-level grouping of tracks; it maps to a process in the
// output trace. Immutable once registered.
type Module struct {
	ID   int64
	Name string
}

// Track is one execution lane within a module; it maps to a thread in the
// output trace. Immutable once registered. A sub-track carries its parent's
// name as a dotted prefix in Name and is otherwise an ordinary track.
type Track struct {
	Module Module
	ID     int64
	Name   string
}

// registry assigns stable identifiers to named modules and tracks.
// Registration is idempotent per key: modules key by name, tracks by the
// (module name, track name) pair.
type registry struct {
	modules     map[string]Module
	moduleOrder []string
	tracks      map[string]Track
	trackOrder  []string
	nextModule  int64
	nextTrack   int64
}

func newRegistry() registry {
	return registry{
		modules:    make(map[string]Module),
		tracks:     make(map[string]Track),
		nextModule: moduleIDBase,
		nextTrack:  trackIDBase,
	}
}

func trackKey(moduleName, trackName string) string {
	return moduleName + "." + trackName
}

// ensureModule returns the module registered under name, creating it if
// needed. created reports whether a new identifier was allocated.
func (r *registry) ensureModule(name string) (m Module, created bool) {
	if m, ok := r.modules[name]; ok {
		return m, false
	}
	m = Module{ID: r.nextModule, Name: name}
	r.nextModule++
	r.modules[name] = m
	r.moduleOrder = append(r.moduleOrder, name)
	return m, true
}

// ensureTrack returns the track registered under (mod, name), creating it if
// needed. The track id counter is shared across all modules.
func (r *registry) ensureTrack(mod Module, name string) (t Track, created bool) {
	key := trackKey(mod.Name, name)
	if t, ok := r.tracks[key]; ok {
		return t, false
	}
	t = Track{Module: mod, ID: r.nextTrack, Name: name}
	r.nextTrack++
	r.tracks[key] = t
	r.trackOrder = append(r.trackOrder, key)
	return t, true
}

func (r *registry) lookupModule(name string) (Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

func (r *registry) lookupTrack(moduleName, name string) (Track, bool) {
	t, ok := r.tracks[trackKey(moduleName, name)]
	return t, ok
}

// holdsModule reports whether m was minted by this registry.
func (r *registry) holdsModule(m Module) bool {
	got, ok := r.modules[m.Name]
	return ok && got.ID == m.ID
}

// holdsTrack reports whether t was minted by this registry.
func (r *registry) holdsTrack(t Track) bool {
	got, ok := r.tracks[trackKey(t.Module.Name, t.Name)]
	return ok && got.ID == t.ID && got.Module.ID == t.Module.ID
}

func (r *registry) moduleNames() []string {
	out := make([]string, len(r.moduleOrder))
	copy(out, r.moduleOrder)
	return out
}

func (r *registry) trackKeys() []string {
	out := make([]string, len(r.trackOrder))
	copy(out, r.trackOrder)
	return out
}
