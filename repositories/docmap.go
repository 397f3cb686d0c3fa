package repositories

import (
	"strings"
	"time"
)

// Raw snapshot helpers. Old documents carry fields written by several app
// generations, so typed decoding alone is not safe: these helpers absorb the
// type wobble (bool stored as bool or "true"/"false", numbers as int64 or
// float64) and report presence separately from the value.

// docBool reads a boolean field. The second return is false when the field is
// absent, nil or not interpretable as a boolean.
func docBool(m map[string]interface{}, key string) (bool, bool) {
	if m == nil {
		return false, false
	}
	v, ok := m[key]
	if !ok || v == nil {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func docString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func docFloat(m map[string]interface{}, key string) float64 {
	if m == nil {
		return 0
	}
	switch t := m[key].(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	}
	return 0
}

func docTime(m map[string]interface{}, key string) *time.Time {
	if m == nil {
		return nil
	}
	if t, ok := m[key].(time.Time); ok {
		return &t
	}
	return nil
}

// Legacy availability fields, oldest last. "foodAvailable" is canonical;
// "available" is kept in sync for old readers; "isAvailable" is retired and
// deleted on migration.
const (
	fieldFoodAvailable = "foodAvailable"
	fieldIsAvailable   = "isAvailable"
	fieldAvailable     = "available"
)

// ResolveAvailability collapses the three historical availability fields of a
// raw food document into one canonical value.
//
// Precedence: foodAvailable, then isAvailable, then available, then true.
// needsMigration is set when foodAvailable is absent or any present field
// disagrees with the canonical value, meaning the stored document should be
// rewritten.
func ResolveAvailability(data map[string]interface{}) (canonical bool, needsMigration bool) {
	foodAvail, hasFood := docBool(data, fieldFoodAvailable)
	isAvail, hasIs := docBool(data, fieldIsAvailable)
	avail, hasAvail := docBool(data, fieldAvailable)

	switch {
	case hasFood:
		canonical = foodAvail
	case hasIs:
		canonical = isAvail
	case hasAvail:
		canonical = avail
	default:
		canonical = true
	}

	if !hasFood {
		return canonical, true
	}
	if hasIs && isAvail != canonical {
		return canonical, true
	}
	if hasAvail && avail != canonical {
		return canonical, true
	}
	return canonical, false
}
