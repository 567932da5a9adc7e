// Package phase defines the contract a generation algorithm
// implements: declared metadata (steps and parameters), a per-step
// Execute entry point, and a parameter round-trip that the pipeline
// relies on for snapshot save/restore.
package phase

import "encoding/json"

// ParamKind tags the variant of a ParamDef/ParamType.
type ParamKind int

const (
	KindFloat ParamKind = iota
	KindInt
	KindBool
	KindText
	KindEnum
)

// ParamType describes the legal domain of one parameter. Float and
// Int carry an inclusive [Min,Max] range; Enum carries its legal
// option strings.
type ParamType struct {
	Kind    ParamKind
	Min     float64
	Max     float64
	Options []string
}

// Float builds a Float parameter type with an inclusive range.
func Float(min, max float64) ParamType { return ParamType{Kind: KindFloat, Min: min, Max: max} }

// Int builds an Int parameter type with an inclusive range.
func Int(min, max float64) ParamType { return ParamType{Kind: KindInt, Min: min, Max: max} }

// Bool builds a Bool parameter type.
func Bool() ParamType { return ParamType{Kind: KindBool} }

// Text builds a free-text parameter type.
func Text() ParamType { return ParamType{Kind: KindText} }

// Enum builds an Enum parameter type restricted to options.
func Enum(options ...string) ParamType { return ParamType{Kind: KindEnum, Options: options} }

// ParamDef is one entry of an algorithm's declared parameter list.
type ParamDef struct {
	Key         string
	Name        string
	Description string
	Type        ParamType
	Default     any
}

// StepMeta describes one executable sub-step of a phase.
type StepMeta struct {
	Name        string
	Description string
	DocURL      string
}

// Meta is a phase's static description: identity, ordered sub-steps,
// and ordered parameter declarations.
type Meta struct {
	ID          string
	Name        string
	Description string
	Steps       []StepMeta
	Params      []ParamDef
}

// Algorithm is the contract every generation phase implements. Execute
// receives a step index in [0,len(Meta().Steps)) and the shared
// runtime context; it must be deterministic given ctx.Rand and must
// not retain ctx past the call. GetParams/SetParams must round-trip:
// SetParams(GetParams()) leaves the algorithm's observable state
// unchanged, and a malformed payload must leave prior state
// untouched rather than partially apply.
type Algorithm interface {
	Meta() Meta
	Execute(stepIndex int, ctx *RuntimeContext) error
	GetParams() json.RawMessage
	SetParams(raw json.RawMessage) error
	OnReset()
}

// ClampFloat clamps v into a Float/Int ParamType's [Min,Max] range.
func ClampFloat(t ParamType, v float64) float64 {
	if v < t.Min {
		return t.Min
	}
	if v > t.Max {
		return t.Max
	}
	return v
}

// ValidateEnum reports whether v is one of t's legal options.
func ValidateEnum(t ParamType, v string) bool {
	for _, o := range t.Options {
		if o == v {
			return true
		}
	}
	return false
}
