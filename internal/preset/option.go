// Package preset implements the preset/feature/option model: the metadata
// describing what each preset can do, the dynamic configuration the editor
// mutates, and the emitters that turn an enabled preset into a CI file for
// one platform.
package preset

// ValueKind discriminates the shapes an option value can take.
type ValueKind int

const (
	KindBool ValueKind = iota
	KindEnum
	KindString
	KindInt
)

// OptionValue is a tagged option value. Kind selects which field is live.
type OptionValue struct {
	Kind     ValueKind
	Bool     bool
	Selected string
	Variants []string
	Str      string
	Int      int
}

// BoolValue returns a boolean option value.
func BoolValue(b bool) OptionValue {
	return OptionValue{Kind: KindBool, Bool: b}
}

// EnumValue returns an enum option value. selected must appear in variants.
func EnumValue(selected string, variants ...string) OptionValue {
	return OptionValue{Kind: KindEnum, Selected: selected, Variants: variants}
}

// StringValue returns a string option value.
func StringValue(s string) OptionValue {
	return OptionValue{Kind: KindString, Str: s}
}

// IntValue returns an integer option value.
func IntValue(n int) OptionValue {
	return OptionValue{Kind: KindInt, Int: n}
}

// Enabled reports whether the value counts as "on". Booleans are on when
// true; every other kind always carries a value and counts as on.
func (v OptionValue) Enabled() bool {
	if v.Kind == KindBool {
		return v.Bool
	}
	return true
}

// Toggle returns the successor value: a flipped boolean, or the next enum
// variant with wrap-around. Other kinds are returned unchanged.
func (v OptionValue) Toggle() OptionValue {
	switch v.Kind {
	case KindBool:
		return BoolValue(!v.Bool)
	case KindEnum:
		if len(v.Variants) == 0 {
			return v
		}
		current := 0
		for i, variant := range v.Variants {
			if variant == v.Selected {
				current = i
				break
			}
		}
		next := v.Variants[(current+1)%len(v.Variants)]
		return EnumValue(next, v.Variants...)
	default:
		return v
	}
}

// Equal reports whether two values have the same kind and payload.
func (v OptionValue) Equal(o OptionValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindEnum:
		if v.Selected != o.Selected || len(v.Variants) != len(o.Variants) {
			return false
		}
		for i := range v.Variants {
			if v.Variants[i] != o.Variants[i] {
				return false
			}
		}
		return true
	case KindString:
		return v.Str == o.Str
	default:
		return v.Int == o.Int
	}
}

// OptionMeta describes one user-facing option of a preset.
type OptionMeta struct {
	ID          string
	DisplayName string
	Description string
	Default     OptionValue
	// DependsOn names an option that must be enabled for this one to take
	// effect. Empty when unconditional.
	DependsOn string
}

// FeatureMeta groups related options for display. Features carry no runtime
// semantics of their own.
type FeatureMeta struct {
	ID          string
	DisplayName string
	Description string
	Options     []OptionMeta
}
