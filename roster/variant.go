package roster

import (
	"fmt"
	"strconv"
)

// VariantFor computes the variant shown for the student at position idx
// (0-based) within a group ordered by name. Positions past the variant
// count wrap around modulo the count, with the last position mapping to
// the count itself rather than 0. A fixed override recorded on the
// student wins over the positional value.
func VariantFor(students []Student, idx int, variantCount int) (string, error) {
	if variantCount <= 0 {
		return "", fmt.Errorf("variant count must be a positive integer")
	}
	if idx < 0 || idx >= len(students) {
		return "", fmt.Errorf("student index out of range: %d", idx)
	}
	if override := students[idx].Variant; override != "" {
		return override, nil
	}

	number := idx + 1 // students are numbered from 1
	if number > variantCount {
		number = number % variantCount
		if number == 0 {
			number = variantCount
		}
	}
	return strconv.Itoa(number), nil
}
