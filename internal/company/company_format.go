package company

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	providerDateLayout = "2006/1/2"
	displayDateLayout  = "02.01.2006"
	currencySuffix     = " RON"
)

// stringify renders a decoded JSON value as display text. nil becomes "".
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// FormatCurrency renders an integer amount with "." thousands separators and
// a " RON" suffix. Values that are not integers come back in their plain
// string form; nil and "" give "".
func FormatCurrency(v any) string {
	var n int64

	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return ""
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return t
		}
		n = parsed
	case float64:
		n = int64(t)
	case int:
		n = int64(t)
	case int64:
		n = t
	case json.Number:
		parsed, err := t.Int64()
		if err != nil {
			return t.String()
		}
		n = parsed
	default:
		return stringify(t)
	}

	return groupThousands(n) + currencySuffix
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}

	return sign + b.String()
}

// FormatDate turns "YYYY/M/D" into "DD.MM.YYYY". Anything else is returned
// unchanged.
func FormatDate(v any) string {
	s := stringify(v)
	if s == "" {
		return ""
	}

	t, err := time.Parse(providerDateLayout, strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return t.Format(displayDateLayout)
}

// FormatNACE renders {code, description} as "code - description". Scalars
// pass through.
func FormatNACE(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return stringify(v)
	}

	code := stringify(obj["code"])
	desc := stringify(obj["description"])
	switch {
	case code == "":
		return desc
	case desc == "":
		return code
	default:
		return code + " - " + desc
	}
}
