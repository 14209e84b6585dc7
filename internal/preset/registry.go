package preset

// Registry holds every preset in registration order. It is built once at
// startup and read-only afterwards.
type Registry struct {
	presets []Preset
}

// NewRegistry returns the standard registry: rust, python-app, go-app,
// docker.
func NewRegistry() *Registry {
	return &Registry{presets: []Preset{Rust{}, PythonApp{}, GoApp{}, Docker{}}}
}

// All returns the presets in registration order.
func (r *Registry) All() []Preset {
	return r.presets
}

// Lookup returns the preset with the given id.
func (r *Registry) Lookup(id string) (Preset, bool) {
	for _, p := range r.presets {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}
