package dice

import (
	"strconv"
	"strings"
)

// ParseNotation parses comma-separated dice notation such as "2d6,1d8".
// A missing count means one die ("d20").
func ParseNotation(notation string) ([]Spec, error) {
	notation = strings.TrimSpace(notation)
	if notation == "" {
		return nil, ErrMissingDice
	}

	parts := strings.Split(notation, ",")
	specs := make([]Spec, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		countText, sidesText, ok := strings.Cut(part, "d")
		if !ok {
			return nil, ErrInvalidNotation
		}
		count := 1
		if countText != "" {
			n, err := strconv.Atoi(countText)
			if err != nil {
				return nil, ErrInvalidNotation
			}
			count = n
		}
		sides, err := strconv.Atoi(sidesText)
		if err != nil {
			return nil, ErrInvalidNotation
		}
		spec := Spec{Sides: sides, Count: count}
		if !validSpec(spec) {
			return nil, ErrInvalidDiceSpec
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
