package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange reads "start-end" or a single number. An en dash or a space may
// separate the bounds.
func ParseRange(text string) (start, end int, err error) {
	text = strings.TrimSpace(text)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '-' || r == '–' || r == ' ' || r == ','
	})
	switch len(fields) {
	case 1:
		start, err = strconv.Atoi(fields[0])
		end = start
	case 2:
		start, err = strconv.Atoi(fields[0])
		if err == nil {
			end, err = strconv.Atoi(fields[1])
		}
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, text)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, text)
	}
	return start, end, nil
}
