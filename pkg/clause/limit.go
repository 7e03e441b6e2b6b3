package clause

import (
	"strconv"
	"strings"
)

// limit parses a row limit. nil and "" mean no limit; zero and negative limits are refused.
func (n *Normalizer) limit(raw any) (int, error) {
	var s string
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case int:
		return n.checkLimit(v, strconv.Itoa(v))
	case int32:
		return n.checkLimit(int(v), strconv.Itoa(int(v)))
	case int64:
		return n.checkLimit(int(v), strconv.FormatInt(v, 10))
	case uint:
		return n.checkLimit(int(v), strconv.FormatUint(uint64(v), 10))
	case string:
		s = v
	case *string:
		if v == nil {
			return 0, nil
		}
		s = *v
	default:
		return 0, newError(ErrUnsupportedInput, KindLimit, "", "unsupported limit type %T", raw)
	}

	s = strings.TrimSpace(stripKeyword(strings.TrimSpace(s), n.def.keyword))
	if s == "" {
		return 0, nil
	}
	if strings.ContainsAny(s, ",") || strings.Contains(strings.ToUpper(s), "OFFSET") {
		return 0, newError(ErrInvalidLimit, KindLimit, s, "offsets are not supported")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, newError(ErrInvalidLimit, KindLimit, s, "limit must be a positive integer")
	}
	return n.checkLimit(v, s)
}

func (n *Normalizer) checkLimit(v int, item string) (int, error) {
	if v <= 0 {
		return 0, newError(ErrInvalidLimit, KindLimit, item, "limit must be a positive integer")
	}
	return v, nil
}
