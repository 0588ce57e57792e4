package engine

import (
	"testing"

	"arbiter-hq/arbiter/pkg/abac/attr"
	"arbiter-hq/arbiter/pkg/abac/policy"
)

func matchRequest() *policy.DecisionRequest {
	return &policy.DecisionRequest{
		Subject: attr.Map{
			"id":              attr.String("alice"),
			"role":            attr.String("editor"),
			"attributes.team": attr.String("docs"),
		},
		Object: attr.Map{
			"id":   attr.String("doc-1"),
			"type": attr.String("document"),
		},
		Action: "edit",
	}
}

func TestMatchTarget(t *testing.T) {
	tests := []struct {
		name   string
		target *policy.Target
		want   bool
	}{
		{
			name:   "nil target matches everything",
			target: nil,
			want:   true,
		},
		{
			name:   "empty target matches everything",
			target: &policy.Target{},
			want:   true,
		},
		{
			name:   "action in list",
			target: &policy.Target{Actions: []string{"read", "edit"}},
			want:   true,
		},
		{
			name:   "action not in list",
			target: &policy.Target{Actions: []string{"delete"}},
			want:   false,
		},
		{
			name: "subject attribute equal",
			target: &policy.Target{
				Subjects: map[string]attr.Value{"role": attr.String("editor")},
			},
			want: true,
		},
		{
			name: "subject attribute unequal",
			target: &policy.Target{
				Subjects: map[string]attr.Value{"role": attr.String("admin")},
			},
			want: false,
		},
		{
			name: "subject attribute absent",
			target: &policy.Target{
				Subjects: map[string]attr.Value{"clearance": attr.String("secret")},
			},
			want: false,
		},
		{
			name: "nested attributes key falls back to flattened form",
			target: &policy.Target{
				Subjects: map[string]attr.Value{"team": attr.String("docs")},
			},
			want: true,
		},
		{
			name: "object attribute equal",
			target: &policy.Target{
				Objects: map[string]attr.Value{"type": attr.String("document")},
			},
			want: true,
		},
		{
			name: "all sections conjunctive",
			target: &policy.Target{
				Subjects: map[string]attr.Value{"role": attr.String("editor")},
				Objects:  map[string]attr.Value{"type": attr.String("document")},
				Actions:  []string{"edit"},
			},
			want: true,
		},
		{
			name: "one failing section fails the whole target",
			target: &policy.Target{
				Subjects: map[string]attr.Value{"role": attr.String("editor")},
				Objects:  map[string]attr.Value{"type": attr.String("image")},
				Actions:  []string{"edit"},
			},
			want: false,
		},
		{
			name: "type mismatch between constraint and attribute",
			target: &policy.Target{
				Subjects: map[string]attr.Value{"role": attr.Int(1)},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchTarget(tt.target, matchRequest()); got != tt.want {
				t.Errorf("MatchTarget() = %v, want %v", got, tt.want)
			}
		})
	}
}
