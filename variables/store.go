package variables

import (
	"fmt"
	"regexp"

	"github.com/oliveagle/jsonpath"
)

var placeholderRegex = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)\}\}`)

// Store wraps a session's variable map. The map is owned by exactly one
// session, so no locking is needed.
type Store struct {
	data map[string]any
}

func NewStore(data map[string]any) *Store {
	if data == nil {
		data = make(map[string]any)
	}
	return &Store{data: data}
}

func (s *Store) Set(key string, value any) {
	s.data[key] = value
}

// Get resolves a dotted path against the variable map. Any missing segment
// or traversal through a non object yields nil rather than an error, so
// templates never fail on absent data.
func (s *Store) Get(path string) any {
	if value, ok := s.data[path]; ok {
		return value
	}
	value, err := jsonpath.JsonPathLookup(s.data, "$."+path)
	if err != nil {
		return nil
	}
	return value
}

// GetString renders the resolved value as a string, empty for absent values.
func (s *Store) GetString(path string) string {
	value := s.Get(path)
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

// Interpolate replaces every {{path}} occurrence with the resolved value.
// Placeholders that resolve to nothing are left in place so the user sees
// {{missing_var}} instead of a blank.
func (s *Store) Interpolate(text string) string {
	return placeholderRegex.ReplaceAllStringFunc(text, func(token string) string {
		path := placeholderRegex.FindStringSubmatch(token)[1]
		resolved := s.GetString(path)
		if resolved == "" {
			return token
		}
		return resolved
	})
}

func (s *Store) Snapshot() map[string]any {
	return s.data
}

// StringValues returns the string valued variables, used to build AI context.
func (s *Store) StringValues() map[string]string {
	out := make(map[string]string)
	for k, v := range s.data {
		if str, ok := v.(string); ok {
			out[k] = str
		}
	}
	return out
}
