package bindconv

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func convertDuration(v any, dst Descriptor) (any, error) {
	unit := time.Millisecond
	if u, ok := AnnotationOf[DurationUnit](dst); ok && u.Unit > 0 {
		unit = u.Unit
	}
	return parseDuration(strings.TrimSpace(v.(string)), unit)
}

// parseDuration reads duration text in any of the three accepted shapes: Go
// form ("1h30m"), ISO-8601 form ("PT1H30M"), or a bare number scaled by unit.
func parseDuration(value string, unit time.Duration) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("invalid duration value %q", value)
	}
	if isISO8601(value) {
		return parseISO8601(value)
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(n) * unit, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q", value)
	}
	return d, nil
}

// isISO8601 reports whether value starts with the ISO-8601 duration
// designator P, allowing for a leading sign.
func isISO8601(value string) bool {
	i := 0
	if value[0] == '+' || value[0] == '-' {
		i = 1
	}
	return i < len(value) && (value[i] == 'P' || value[i] == 'p')
}

// parseISO8601 handles the PnDTnHnMn.nS shape. A leading sign negates the
// whole value, each component may carry its own sign, days sit before the T
// separator with hours, minutes and seconds after it, and only the seconds
// component accepts a fraction. Components appear at most once and in order;
// a T with no following component is rejected.
func parseISO8601(value string) (time.Duration, error) {
	s := value
	negative := false
	if s[0] == '+' || s[0] == '-' {
		negative = s[0] == '-'
		s = s[1:]
	}
	if s == "" || (s[0] != 'P' && s[0] != 'p') {
		return 0, fmt.Errorf("invalid duration value %q", value)
	}
	s = s[1:]

	var total time.Duration
	inTime := false
	components := 0
	lastRank := 0

	for len(s) > 0 {
		if s[0] == 'T' || s[0] == 't' {
			if inTime {
				return 0, fmt.Errorf("invalid duration value %q", value)
			}
			inTime = true
			s = s[1:]
			continue
		}

		sign := time.Duration(1)
		if s[0] == '+' || s[0] == '-' {
			if s[0] == '-' {
				sign = -1
			}
			s = s[1:]
		}

		digits := 0
		for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			return 0, fmt.Errorf("invalid duration value %q", value)
		}
		n, err := strconv.ParseInt(s[:digits], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q", value)
		}
		s = s[digits:]

		var frac time.Duration
		hasFrac := false
		if len(s) > 0 && (s[0] == '.' || s[0] == ',') {
			s = s[1:]
			digits = 0
			for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
				digits++
			}
			if digits == 0 {
				return 0, fmt.Errorf("invalid duration value %q", value)
			}
			fracStr := s[:digits]
			if len(fracStr) > 9 {
				fracStr = fracStr[:9]
			}
			fracStr += strings.Repeat("0", 9-len(fracStr))
			fn, err := strconv.ParseInt(fracStr, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid duration value %q", value)
			}
			frac = time.Duration(fn)
			hasFrac = true
			s = s[digits:]
		}

		if len(s) == 0 {
			return 0, fmt.Errorf("invalid duration value %q", value)
		}
		unitCh := s[0]
		s = s[1:]
		if hasFrac && unitCh != 'S' && unitCh != 's' {
			return 0, fmt.Errorf("invalid duration value %q", value)
		}

		// Ranks order the components D, H, M, S; each must rank above the
		// previous one, which rules out repeats and reordering.
		var component time.Duration
		rank := 0
		switch {
		case !inTime && (unitCh == 'D' || unitCh == 'd'):
			rank = 1
			component = time.Duration(n) * 24 * time.Hour
		case inTime && (unitCh == 'H' || unitCh == 'h'):
			rank = 2
			component = time.Duration(n) * time.Hour
		case inTime && (unitCh == 'M' || unitCh == 'm'):
			rank = 3
			component = time.Duration(n) * time.Minute
		case inTime && (unitCh == 'S' || unitCh == 's'):
			rank = 4
			component = time.Duration(n)*time.Second + frac
		default:
			return 0, fmt.Errorf("invalid duration value %q", value)
		}
		if rank <= lastRank {
			return 0, fmt.Errorf("invalid duration value %q", value)
		}
		lastRank = rank
		total += sign * component
		components++
	}

	// lastRank below 2 after a T means no hour, minute or second followed it.
	if components == 0 || (inTime && lastRank < 2) {
		return 0, fmt.Errorf("invalid duration value %q", value)
	}
	if negative {
		total = -total
	}
	return total, nil
}
