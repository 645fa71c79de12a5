package analytics

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chamados/dashboard/internal/models"
)

// NormalizeKey lower-cases and trims a column name. A UTF-8 BOM left over
// from spreadsheet exports is dropped as well.
func NormalizeKey(k string) string {
	k = strings.ReplaceAll(k, "\ufeff", "")
	return strings.ToLower(strings.TrimSpace(k))
}

// Normalize rewrites one raw row. When two raw keys collapse to the same
// normalized key the later value wins, but the key keeps its first position.
func Normalize(r models.RawRecord) models.NormalizedRecord {
	out := models.NormalizedRecord{
		Keys:   make([]string, 0, len(r)),
		Values: make(map[string]string, len(r)),
	}
	for _, f := range r {
		key := NormalizeKey(f.Key)
		if _, seen := out.Values[key]; !seen {
			out.Keys = append(out.Keys, key)
		}
		out.Values[key] = strings.TrimSpace(Stringify(f.Value))
	}
	return out
}

func NormalizeAll(rows []models.RawRecord) []models.NormalizedRecord {
	out := make([]models.NormalizedRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, Normalize(r))
	}
	return out
}

// Stringify renders any decoded cell value as text. nil becomes "".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
