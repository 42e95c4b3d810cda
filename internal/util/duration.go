package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration converts "m:ss" or "h:mm:ss" style text into seconds. The
// source site mixes colon-separated times with a legacy dot-separated form,
// so the caller picks the separator. Fractional seconds are not supported.
func ParseDuration(s, sep string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	switch len(parts) {
	case 2:
		minutes, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
		}
		seconds, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
		}
		return minutes*60 + seconds, nil
	case 3:
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in %q: %w", s, err)
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
		}
		seconds, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
		}
		return hours*3600 + minutes*60 + seconds, nil
	}
	return 0, fmt.Errorf("unsupported duration format %q", s)
}
