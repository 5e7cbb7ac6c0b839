package units

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/scene/pkg/errors"
)

// ParseLength parses a textual length such as "12px", "1.5em", "50%",
// "50%c" or "auto". A bare number is read as pixels.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Px(0), fmt.Errorf("%w: empty string", errors.ErrMalformedLength)
	}
	switch strings.ToLower(s) {
	case "auto":
		return Auto(), nil
	case "ignore", "none":
		return Ignore(), nil
	case "keep":
		return Keep(), nil
	}

	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	num, suffix := s[:end], strings.ToLower(strings.TrimSpace(s[end:]))
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Px(0), fmt.Errorf("%w: %q", errors.ErrMalformedLength, s)
	}
	if suffix == "" {
		return Px(v), nil
	}
	for u, name := range suffixes {
		if Unit(u).IsKeyword() {
			continue
		}
		if name == suffix {
			return Length{Value: v, Unit: Unit(u)}, nil
		}
	}
	return Px(0), fmt.Errorf("%w: unknown unit %q in %q", errors.ErrMalformedLength, suffix, s)
}

// ParseLengthOr parses s and, on failure, reports a KindLength warning
// attributed to op and returns 0px so layout can always complete.
func ParseLengthOr(op, s string) Length {
	l, err := ParseLength(s)
	if err != nil {
		errors.Warn(op, errors.KindLength, s, err)
		return Px(0)
	}
	return l
}
