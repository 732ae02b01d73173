package multipart

import (
	"fmt"
	"strconv"
	"strings"
)

// Unflatten rebuilds a nested structure from flattened fields: dotted
// segments become map entries, bracketed indices become slice elements.
// Leaves stay strings; it is the structural inverse of Flatten and exists
// for payload verification (a flattened request parsed back must match the
// original modulo date normalization and nil→"" collapsing).
func Unflatten(fields []Field) (map[string]interface{}, error) {
	root := make(map[string]interface{})
	for _, f := range fields {
		segs, err := parseKey(f.Key)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", f.Key, err)
		}
		if _, err := assign(root, segs, f.Value); err != nil {
			return nil, fmt.Errorf("key %q: %w", f.Key, err)
		}
	}
	return root, nil
}

// segment is one step of a key path: a map field name, or a slice index
// when name is empty.
type segment struct {
	name  string
	index int
	isIdx bool
}

func parseKey(key string) ([]segment, error) {
	if key == "" {
		return nil, fmt.Errorf("empty key")
	}
	var segs []segment
	for _, part := range strings.Split(key, ".") {
		name := part
		var idxs []int
		for {
			open := strings.IndexByte(name, '[')
			if open < 0 {
				break
			}
			close := strings.IndexByte(name, ']')
			if close < open {
				return nil, fmt.Errorf("unbalanced brackets in %q", part)
			}
			idx, err := strconv.Atoi(name[open+1 : close])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("bad index in %q", part)
			}
			idxs = append(idxs, idx)
			name = name[:open] + name[close+1:]
		}
		if name == "" {
			return nil, fmt.Errorf("missing field name in %q", part)
		}
		segs = append(segs, segment{name: name})
		for _, idx := range idxs {
			segs = append(segs, segment{index: idx, isIdx: true})
		}
	}
	return segs, nil
}

// assign places value at the path described by segs inside container,
// creating intermediate maps and slices as needed, and returns the
// (possibly reallocated) container.
func assign(container interface{}, segs []segment, value string) (interface{}, error) {
	if len(segs) == 0 {
		if container != nil {
			return nil, fmt.Errorf("leaf and branch share a key")
		}
		return value, nil
	}

	seg := segs[0]
	if seg.isIdx {
		var slice []interface{}
		switch cur := container.(type) {
		case nil:
			slice = nil
		case []interface{}:
			slice = cur
		default:
			return nil, fmt.Errorf("mixed map/slice use")
		}
		for len(slice) <= seg.index {
			slice = append(slice, nil)
		}
		child, err := assign(slice[seg.index], segs[1:], value)
		if err != nil {
			return nil, err
		}
		slice[seg.index] = child
		return slice, nil
	}

	var m map[string]interface{}
	switch cur := container.(type) {
	case nil:
		m = make(map[string]interface{})
	case map[string]interface{}:
		m = cur
	default:
		return nil, fmt.Errorf("mixed map/slice use")
	}
	child, err := assign(m[seg.name], segs[1:], value)
	if err != nil {
		return nil, err
	}
	m[seg.name] = child
	return m, nil
}
