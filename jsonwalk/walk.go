// Package jsonwalk provides schema-tolerant access to loosely-typed JSON
// values. Lookups are described as data (a sequence of steps) and
// interpreted by a single safe-walk routine that returns an optional value
// instead of panicking on missing keys, type mismatches, or bad indexes.
package jsonwalk

// stepKind discriminates the step variants.
type stepKind int

const (
	stepKey stepKind = iota
	stepIndex
	stepScan
)

// Step is one move through a JSON graph.
type Step struct {
	kind  stepKind
	key   string
	index int
}

// Key descends into a map value by key.
func Key(k string) Step {
	return Step{kind: stepKey, key: k}
}

// Index descends into a list value by position.
func Index(i int) Step {
	return Step{kind: stepIndex, index: i}
}

// Scan searches a list for the first object containing key k and yields
// that key's value. Used for schemas that expose sections as an unordered
// list of single-key tagged variants, where position is not stable.
func Scan(k string) Step {
	return Step{kind: stepScan, key: k}
}

// Walk follows steps from root and returns the located value. Any missing
// intermediate key, type mismatch, or index out of range yields
// (nil, false); Walk never panics regardless of the input shape.
func Walk(root any, steps ...Step) (any, bool) {
	cur := root
	for _, s := range steps {
		switch s.kind {
		case stepKey:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			v, ok := m[s.key]
			if !ok {
				return nil, false
			}
			cur = v

		case stepIndex:
			l, ok := cur.([]any)
			if !ok || s.index < 0 || s.index >= len(l) {
				return nil, false
			}
			cur = l[s.index]

		case stepScan:
			l, ok := cur.([]any)
			if !ok {
				return nil, false
			}
			found := false
			for _, item := range l {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if v, ok := m[s.key]; ok {
					cur = v
					found = true
					break
				}
			}
			if !found {
				return nil, false
			}
		}
	}
	return cur, true
}

// String walks to a string value.
func String(root any, steps ...Step) (string, bool) {
	v, ok := Walk(root, steps...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr walks to a string value, returning def when the path does not
// resolve to a string.
func StringOr(root any, def string, steps ...Step) string {
	if s, ok := String(root, steps...); ok {
		return s
	}
	return def
}

// Slice walks to a list value.
func Slice(root any, steps ...Step) ([]any, bool) {
	v, ok := Walk(root, steps...)
	if !ok {
		return nil, false
	}
	l, ok := v.([]any)
	return l, ok
}

// Map walks to an object value.
func Map(root any, steps ...Step) (map[string]any, bool) {
	v, ok := Walk(root, steps...)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}
