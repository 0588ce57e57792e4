package attr

import (
	"testing"
	"time"
)

func TestValue_Equal(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{
			name: "equal strings",
			a:    String("admin"),
			b:    String("admin"),
			want: true,
		},
		{
			name: "different strings",
			a:    String("admin"),
			b:    String("viewer"),
			want: false,
		},
		{
			name: "int and float denoting same quantity",
			a:    Int(5),
			b:    Number(5.0),
			want: true,
		},
		{
			name: "equal booleans",
			a:    Bool(true),
			b:    Bool(true),
			want: true,
		},
		{
			name: "equal timestamps",
			a:    Time(now),
			b:    Time(now),
			want: true,
		},
		{
			name: "kind mismatch is unequal",
			a:    String("5"),
			b:    Number(5),
			want: false,
		},
		{
			name: "undefined never equals a value",
			a:    Undefined,
			b:    String(""),
			want: false,
		},
		{
			name: "undefined never equals undefined",
			a:    Undefined,
			b:    Undefined,
			want: false,
		},
		{
			name: "equal lists element-wise",
			a:    List(String("a"), Int(1)),
			b:    List(String("a"), Number(1)),
			want: true,
		},
		{
			name: "lists of different length",
			a:    List(String("a")),
			b:    List(String("a"), String("b")),
			want: false,
		},
		{
			name: "lists with different elements",
			a:    List(String("a"), String("b")),
			b:    List(String("a"), String("c")),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestValue_Compare(t *testing.T) {
	early := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		a       Value
		b       Value
		want    int
		ordered bool
	}{
		{name: "number less", a: Number(1), b: Number(2), want: -1, ordered: true},
		{name: "number greater", a: Number(3), b: Number(2), want: 1, ordered: true},
		{name: "number equal", a: Int(2), b: Number(2), want: 0, ordered: true},
		{name: "time before", a: Time(early), b: Time(late), want: -1, ordered: true},
		{name: "time after", a: Time(late), b: Time(early), want: 1, ordered: true},
		{name: "time equal", a: Time(early), b: Time(early), want: 0, ordered: true},
		{name: "strings are unordered", a: String("a"), b: String("b"), ordered: false},
		{name: "mixed kinds are unordered", a: Number(1), b: Time(early), ordered: false},
		{name: "undefined is unordered", a: Undefined, b: Number(1), ordered: false},
		{name: "booleans are unordered", a: Bool(false), b: Bool(true), ordered: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Compare(tt.b)
			if ok != tt.ordered {
				t.Fatalf("Compare(%s, %s) ordered = %v, want %v", tt.a, tt.b, ok, tt.ordered)
			}
			if ok && got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFromAny(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		in   any
		want Value
		ok   bool
	}{
		{name: "string", in: "hello", want: String("hello"), ok: true},
		{name: "bool", in: true, want: Bool(true), ok: true},
		{name: "int", in: 42, want: Number(42), ok: true},
		{name: "int64", in: int64(42), want: Number(42), ok: true},
		{name: "float64", in: 2.5, want: Number(2.5), ok: true},
		{name: "time", in: now, want: Time(now), ok: true},
		{name: "nil is undefined", in: nil, want: Undefined, ok: true},
		{name: "list", in: []any{"a", 1}, want: List(String("a"), Number(1)), ok: true},
		{name: "unsupported map", in: map[string]any{"k": "v"}, ok: false},
		{name: "list with unsupported element", in: []any{"a", map[string]any{}}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromAny(tt.in)
			if ok != tt.ok {
				t.Fatalf("FromAny(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if tt.want.IsUndefined() {
				if !got.IsUndefined() {
					t.Errorf("FromAny(%v) = %s, want undefined", tt.in, got)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("FromAny(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMap_Get(t *testing.T) {
	m := Map{
		"role":          String("admin"),
		"profile.email": String("a@example.com"),
	}

	if got := m.Get("role"); !got.Equal(String("admin")) {
		t.Errorf("Get(role) = %s, want \"admin\"", got)
	}

	// Dotted keys are flat: the joined path is a single key.
	if got := m.Get("profile.email"); !got.Equal(String("a@example.com")) {
		t.Errorf("Get(profile.email) = %s", got)
	}

	if got := m.Get("missing"); !got.IsUndefined() {
		t.Errorf("Get(missing) = %s, want undefined", got)
	}

	var nilMap Map
	if got := nilMap.Get("anything"); !got.IsUndefined() {
		t.Errorf("nil map Get = %s, want undefined", got)
	}
}
