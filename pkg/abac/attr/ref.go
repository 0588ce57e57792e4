package attr

import (
	"fmt"
	"regexp"
	"strings"
)

// Source identifies where a reference resolves its value from.
type Source string

const (
	// SourceLiteral references a constant embedded in the policy.
	SourceLiteral Source = "literal"

	// SourceSubject references an attribute of the requesting subject.
	SourceSubject Source = "subject"

	// SourceObject references an attribute of the target object.
	SourceObject Source = "object"

	// SourceEnvironment references an ambient attribute of the request.
	SourceEnvironment Source = "environment"
)

// Transform is an optional post-processing step applied to a resolved
// value.
type Transform string

const (
	// TransformNone leaves the resolved value untouched.
	TransformNone Transform = ""

	// TransformHour maps a timestamp to its hour of day (0-23).
	TransformHour Transform = "hour"

	// TransformDayOfWeek maps a timestamp to its weekday (Sunday=0).
	TransformDayOfWeek Transform = "dayOfWeek"

	// TransformLowercase maps a string to its lowercase form.
	TransformLowercase Transform = "lowercase"

	// TransformLength maps a string or list to its length.
	TransformLength Transform = "length"
)

// Ref is one operand of a comparison: either a literal constant or a
// dotted-path lookup into one of the request's attribute maps,
// optionally post-processed by a transform.
type Ref struct {
	Source    Source
	Path      string
	Literal   Value
	Transform Transform
}

// Lit builds a literal reference.
func Lit(v Value) Ref { return Ref{Source: SourceLiteral, Literal: v} }

// SubjectRef builds a subject attribute reference.
func SubjectRef(path string) Ref { return Ref{Source: SourceSubject, Path: path} }

// ObjectRef builds an object attribute reference.
func ObjectRef(path string) Ref { return Ref{Source: SourceObject, Path: path} }

// EnvRef builds an environment attribute reference.
func EnvRef(path string) Ref { return Ref{Source: SourceEnvironment, Path: path} }

// WithTransform returns a copy of the reference with the transform set.
func (r Ref) WithTransform(t Transform) Ref {
	r.Transform = t
	return r
}

// pathPattern accepts non-empty dot-separated segments of word
// characters and hyphens. Leading, trailing or doubled dots are
// malformed.
var pathPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)

// ValidPath reports whether a reference path is syntactically valid.
func ValidPath(path string) bool {
	return pathPattern.MatchString(path)
}

// Resolve resolves a reference against the three request contexts.
//
// A syntactically invalid path, an unknown source and an unknown
// transform are authoring defects and return an error. An absent
// attribute is not: it resolves to Undefined.
func Resolve(r Ref, subject, object, environment Map) (Value, error) {
	var v Value

	switch r.Source {
	case SourceLiteral:
		v = r.Literal
	case SourceSubject, SourceObject, SourceEnvironment:
		if !ValidPath(r.Path) {
			return Undefined, fmt.Errorf("malformed reference path %q", r.Path)
		}
		switch r.Source {
		case SourceSubject:
			v = subject.Get(r.Path)
		case SourceObject:
			v = object.Get(r.Path)
		default:
			v = environment.Get(r.Path)
		}
	default:
		return Undefined, fmt.Errorf("unknown reference source %q", r.Source)
	}

	return applyTransform(v, r.Transform)
}

// applyTransform applies the optional transform. Undefined passes
// through untouched, and a kind the transform does not accept collapses
// to Undefined so that downstream comparisons stay fail-closed.
func applyTransform(v Value, t Transform) (Value, error) {
	switch t {
	case TransformNone:
		return v, nil

	case TransformHour:
		if ts, ok := v.AsTime(); ok {
			return Int(ts.Hour()), nil
		}
		return Undefined, nil

	case TransformDayOfWeek:
		if ts, ok := v.AsTime(); ok {
			return Int(int(ts.Weekday())), nil
		}
		return Undefined, nil

	case TransformLowercase:
		if s, ok := v.AsString(); ok {
			return String(strings.ToLower(s)), nil
		}
		return Undefined, nil

	case TransformLength:
		if s, ok := v.AsString(); ok {
			return Int(len(s)), nil
		}
		if l, ok := v.AsList(); ok {
			return Int(len(l)), nil
		}
		return Undefined, nil

	default:
		return Undefined, fmt.Errorf("unsupported transform %q", t)
	}
}
