package preset

// config.go — the dynamic option store the editor mutates. One Config exists
// per registered preset for the lifetime of an editor session; emitters never
// read it directly, they go through a typed instance built by the preset's
// fromConfig.

// Config holds the currently selected value for every option of one preset.
type Config struct {
	PresetID string
	values   map[string]OptionValue
}

// NewConfig returns an empty config for the preset.
func NewConfig(presetID string) *Config {
	return &Config{PresetID: presetID, values: map[string]OptionValue{}}
}

// Get returns the stored value for an option id.
func (c *Config) Get(id string) (OptionValue, bool) {
	if c == nil {
		return OptionValue{}, false
	}
	v, ok := c.values[id]
	return v, ok
}

// GetBool returns the boolean value of an option, false when missing or not
// a boolean.
func (c *Config) GetBool(id string) bool {
	v, ok := c.Get(id)
	return ok && v.Kind == KindBool && v.Bool
}

// GetString returns the string value of an option, "" when missing.
func (c *Config) GetString(id string) string {
	v, ok := c.Get(id)
	if !ok || v.Kind != KindString {
		return ""
	}
	return v.Str
}

// GetEnum returns the selected variant of an enum option.
func (c *Config) GetEnum(id string) (string, bool) {
	v, ok := c.Get(id)
	if !ok || v.Kind != KindEnum {
		return "", false
	}
	return v.Selected, true
}

// Set stores a value for an option id.
func (c *Config) Set(id string, v OptionValue) {
	c.values[id] = v
}

// Toggle advances the value of an option (bool flip, enum cycle). Missing
// ids are ignored.
func (c *Config) Toggle(id string) {
	if v, ok := c.Get(id); ok {
		c.values[id] = v.Toggle()
	}
}

// AnyEnabled reports whether any option counts as on (see
// OptionValue.Enabled).
func (c *Config) AnyEnabled() bool {
	if c == nil {
		return false
	}
	for _, v := range c.values {
		if v.Enabled() {
			return true
		}
	}
	return false
}

// AnyBoolOn reports whether any boolean option is true.
func (c *Config) AnyBoolOn() bool {
	if c == nil {
		return false
	}
	for _, v := range c.values {
		if v.Kind == KindBool && v.Bool {
			return true
		}
	}
	return false
}

// Len returns the number of stored options.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// Equal reports whether two configs hold equal values for the same preset.
func (c *Config) Equal(o *Config) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.PresetID != o.PresetID || len(c.values) != len(o.values) {
		return false
	}
	for id, v := range c.values {
		ov, ok := o.values[id]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := NewConfig(c.PresetID)
	for id, v := range c.values {
		out.values[id] = v
	}
	return out
}
