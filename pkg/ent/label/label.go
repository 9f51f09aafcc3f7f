// Package label handles the eight digit label ids of plants and trees.
package label

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	// Digits is the length of a label id without prefix.
	Digits = 8

	// Max is the highest label id.
	Max = 99_999_999

	// EliminatedPrefix marks labels of eliminated plants. Such labels do
	// not block their number.
	EliminatedPrefix = "#"
)

var (
	labelRe = regexp.MustCompile(`^#?\d{8}$`)
	seedRe  = regexp.MustCompile(`^\d{1,8}$`)
)

// Valid reports if s is a well formed label id, eliminated or not.
func Valid(s string) bool {
	return labelRe.MatchString(s)
}

// IsEliminated reports if the label carries the elimination prefix.
func IsEliminated(s string) bool {
	return strings.HasPrefix(s, EliminatedPrefix)
}

// Format zero-pads n to a label id.
func Format(n int) string {
	return fmt.Sprintf("%0*d", Digits, n)
}

// Eliminate adds the elimination prefix if it is missing.
func Eliminate(s string) string {
	if IsEliminated(s) {
		return s
	}
	return EliminatedPrefix + s
}

// Restore removes the elimination prefix.
func Restore(s string) string {
	return strings.TrimPrefix(s, EliminatedPrefix)
}

// Normalize validates a seed of up to eight digits and pads it to a
// label id.
func Normalize(seed string) (string, error) {
	seed = strings.TrimSpace(seed)
	if !seedRe.MatchString(seed) {
		return "", SeedError(seed)
	}
	n, err := strconv.Atoi(seed)
	if err != nil {
		return "", SeedError(seed)
	}
	return Format(n), nil
}

// NextFree returns the lowest label id at or above seed that is not in
// used. Eliminated labels in used are ignored. The order of used does not
// matter.
func NextFree(seed string, used []string) (string, error) {
	start, err := Normalize(seed)
	if err != nil {
		return "", err
	}
	next, _ := strconv.Atoi(start)

	taken := make([]int, 0, len(used))
	for _, v := range used {
		if IsEliminated(v) || !labelRe.MatchString(v) {
			continue
		}
		n, _ := strconv.Atoi(v)
		if n >= next {
			taken = append(taken, n)
		}
	}
	slices.Sort(taken)

	for _, n := range taken {
		if n > next {
			break
		}
		if n == next {
			next++
		}
	}

	if next > Max {
		return "", ExhaustedError(start)
	}
	return Format(next), nil
}
