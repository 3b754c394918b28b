package descriptor

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The parsed descriptor stays an untyped map only inside this package; the
// helpers below project it into the typed record fields, supplying defaults
// for everything optional.

func stringField(cfg map[string]interface{}, key string) string {
	value, ok := cfg[key]
	if !ok || value == nil {
		return ""
	}
	return coerceString(value)
}

func boolField(cfg map[string]interface{}, key string) bool {
	value, ok := cfg[key].(bool)
	return ok && value
}

func stringListField(cfg map[string]interface{}, key string) []string {
	raw, ok := cfg[key].([]interface{})
	if !ok {
		return []string{}
	}
	list := make([]string, 0, len(raw))
	for _, item := range raw {
		if item == nil {
			continue
		}
		list = append(list, coerceString(item))
	}
	return list
}

// coerceString renders a descriptor value as a string. Version fields in the
// wild are occasionally plain numbers; they must keep their literal form.
func coerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
