package loader

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"arbiter-hq/arbiter/pkg/abac/attr"
	"arbiter-hq/arbiter/pkg/abac/policy"
)

// yamlDocument is the top-level structure of a policy file.
type yamlDocument struct {
	Policies []yamlPolicy `yaml:"policies"`
}

// yamlPolicy is the intermediate form of one policy before conversion
// to the in-memory model.
type yamlPolicy struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Priority  int         `yaml:"priority"`
	Effect    string      `yaml:"effect"`
	Target    *yamlTarget `yaml:"target"`
	Condition any         `yaml:"condition"`
}

type yamlTarget struct {
	Subjects map[string]any `yaml:"subjects"`
	Objects  map[string]any `yaml:"objects"`
	Actions  []string       `yaml:"actions"`
}

// parseDocument decodes YAML bytes into policies.
func parseDocument(data []byte, sourcePath string) ([]*policy.Policy, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{FilePath: sourcePath, Message: "YAML decoding failed", Cause: err}
	}

	policies := make([]*policy.Policy, 0, len(doc.Policies))
	for i, yp := range doc.Policies {
		p, err := convertPolicy(yp)
		if err != nil {
			return nil, &ParseError{
				FilePath: sourcePath,
				Message:  fmt.Sprintf("policy %d (%q)", i, yp.ID),
				Cause:    err,
			}
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func convertPolicy(yp yamlPolicy) (*policy.Policy, error) {
	p := &policy.Policy{
		ID:       yp.ID,
		Name:     yp.Name,
		Priority: yp.Priority,
		Effect:   policy.Effect(yp.Effect),
	}

	if yp.Target != nil {
		target, err := convertTarget(yp.Target)
		if err != nil {
			return nil, err
		}
		p.Target = target
	}

	if yp.Condition != nil {
		cond, err := convertCondition(yp.Condition)
		if err != nil {
			return nil, err
		}
		p.Condition = cond
	}

	return p, nil
}

func convertTarget(yt *yamlTarget) (*policy.Target, error) {
	t := &policy.Target{Actions: yt.Actions}

	var err error
	if t.Subjects, err = convertAttrMap(yt.Subjects, "subjects"); err != nil {
		return nil, err
	}
	if t.Objects, err = convertAttrMap(yt.Objects, "objects"); err != nil {
		return nil, err
	}
	return t, nil
}

func convertAttrMap(m map[string]any, section string) (map[string]attr.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string]attr.Value, len(m))
	for k, raw := range m {
		v, ok := attr.FromAny(raw)
		if !ok {
			return nil, fmt.Errorf("target %s: unsupported value type %T for key %q", section, raw, k)
		}
		out[k] = v
	}
	return out, nil
}

// convertCondition converts a decoded YAML node into a condition tree.
// A map with an "and"/"or"/"not" key is a logical node; a map with an
// "op" key is a comparison.
func convertCondition(raw any) (*policy.Condition, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("condition must be a mapping, got %T", raw)
	}

	if children, ok := node["and"]; ok {
		return convertLogical(policy.OpAnd, children)
	}
	if children, ok := node["or"]; ok {
		return convertLogical(policy.OpOr, children)
	}
	if child, ok := node["not"]; ok {
		c, err := convertCondition(child)
		if err != nil {
			return nil, err
		}
		return policy.Not(c), nil
	}

	if _, ok := node["op"]; ok {
		return convertComparison(node)
	}

	return nil, fmt.Errorf("condition mapping needs one of: and, or, not, op")
}

func convertLogical(op policy.LogicalOp, raw any) (*policy.Condition, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s expects a list of conditions, got %T", op, raw)
	}

	children := make([]*policy.Condition, 0, len(items))
	for _, item := range items {
		c, err := convertCondition(item)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return &policy.Condition{Type: policy.ConditionLogical, Logic: op, Children: children}, nil
}

func convertComparison(node map[string]any) (*policy.Condition, error) {
	op, _ := node["op"].(string)

	left, err := convertRef(node["left"])
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	right, err := convertRef(node["right"])
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}

	return policy.Compare(policy.CompareOp(op), left, right), nil
}

// convertRef converts one comparison operand. Strings with a known
// source prefix are attribute references ("subject.id",
// "environment.timestamp | hour"); explicit maps spell out source,
// path and transform; everything else is a literal.
func convertRef(raw any) (attr.Ref, error) {
	switch v := raw.(type) {
	case string:
		if ref, ok := parseRefShorthand(v); ok {
			return ref, nil
		}
		return attr.Lit(attr.String(v)), nil

	case map[string]any:
		return parseRefMap(v)

	default:
		val, ok := attr.FromAny(raw)
		if !ok {
			return attr.Ref{}, fmt.Errorf("unsupported operand type %T", raw)
		}
		return attr.Lit(val), nil
	}
}

func parseRefShorthand(s string) (attr.Ref, bool) {
	expr := s
	transform := attr.TransformNone
	if idx := strings.Index(s, "|"); idx >= 0 {
		expr = strings.TrimSpace(s[:idx])
		transform = attr.Transform(strings.TrimSpace(s[idx+1:]))
	}

	source, path, ok := strings.Cut(expr, ".")
	if !ok {
		return attr.Ref{}, false
	}

	switch attr.Source(source) {
	case attr.SourceSubject, attr.SourceObject, attr.SourceEnvironment:
		return attr.Ref{
			Source:    attr.Source(source),
			Path:      path,
			Transform: transform,
		}, true
	default:
		return attr.Ref{}, false
	}
}

func parseRefMap(m map[string]any) (attr.Ref, error) {
	if lit, ok := m["literal"]; ok {
		val, ok := attr.FromAny(lit)
		if !ok {
			return attr.Ref{}, fmt.Errorf("unsupported literal type %T", lit)
		}
		return attr.Lit(val), nil
	}

	source, _ := m["source"].(string)
	path, _ := m["path"].(string)
	transform, _ := m["transform"].(string)

	if source == "" || path == "" {
		return attr.Ref{}, fmt.Errorf("reference map needs source and path (or literal)")
	}

	return attr.Ref{
		Source:    attr.Source(source),
		Path:      path,
		Transform: attr.Transform(transform),
	}, nil
}
