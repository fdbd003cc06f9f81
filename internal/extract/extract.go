// Package extract reads values out of loosely-typed decoded JSON without
// panicking on a missing or mistyped segment.
package extract

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrBadPath = errors.New("invalid extraction path")

// Segment is a single step of a Path: either an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Path is an ordered chain of segments applied to a decoded JSON value.
type Path []Segment

// Key builds an object-key segment.
func Key(k string) Segment { return Segment{Key: k} }

// Index builds an array-index segment.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Parse turns "data.cards[1].card.restaurants" into a Path.
func Parse(raw string) (Path, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadPath)
	}

	var path Path
	for _, part := range strings.Split(raw, ".") {
		if part == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrBadPath, raw)
		}
		key := part
		var indexes []int
		if open := strings.IndexByte(part, '['); open >= 0 {
			key = part[:open]
			rest := part[open:]
			for rest != "" {
				if rest[0] != '[' {
					return nil, fmt.Errorf("%w: unexpected %q in %q", ErrBadPath, rest, raw)
				}
				end := strings.IndexByte(rest, ']')
				if end < 0 {
					return nil, fmt.Errorf("%w: unclosed index in %q", ErrBadPath, raw)
				}
				n, err := strconv.Atoi(rest[1:end])
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: bad index %q in %q", ErrBadPath, rest[1:end], raw)
				}
				indexes = append(indexes, n)
				rest = rest[end+1:]
			}
		}
		if key != "" {
			path = append(path, Key(key))
		}
		for _, n := range indexes {
			path = append(path, Index(n))
		}
	}
	return path, nil
}

// MustParse is Parse for package-level constants.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 && !s.IsIndex {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Lookup walks v along the path. The second result is false as soon as any
// segment is absent or of the wrong kind.
func (p Path) Lookup(v any) (any, bool) {
	cur := v
	for _, seg := range p {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// Array is Lookup that also requires the final value to be a JSON array.
func (p Path) Array(v any) ([]any, bool) {
	found, ok := p.Lookup(v)
	if !ok {
		return nil, false
	}
	arr, ok := found.([]any)
	return arr, ok
}

func step(v any, seg Segment) (any, bool) {
	if seg.IsIndex {
		arr, ok := v.([]any)
		if !ok || seg.Index < 0 || seg.Index >= len(arr) {
			return nil, false
		}
		return arr[seg.Index], true
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	next, ok := obj[seg.Key]
	return next, ok
}

// Object returns obj[key] when it is itself an object.
func Object(obj map[string]any, key string) (map[string]any, bool) {
	v, ok := obj[key].(map[string]any)
	return v, ok
}

// String returns obj[key] when it is a string, otherwise "".
func String(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// Number returns obj[key] when it is a finite JSON number.
func Number(obj map[string]any, key string) (float64, bool) {
	n, ok := obj[key].(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Bool returns obj[key] when it is a boolean, otherwise false.
func Bool(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}

// Strings collects the string elements of obj[key], skipping anything else.
func Strings(obj map[string]any, key string) []string {
	arr, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
