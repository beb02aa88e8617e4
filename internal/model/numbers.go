package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// NumbersCount is how many values make up a draw.
	NumbersCount = 6
	// NumbersMin is the smallest allowed value.
	NumbersMin = 1
	// NumbersMax is the largest allowed value.
	NumbersMax = 60
)

// Numbers is a validated, ascending set of six distinct values in 1..60.
type Numbers []int

// NewNumbers validates values and returns them in ascending order.
// The input slice is not modified.
func NewNumbers(values []int) (Numbers, error) {
	if len(values) != NumbersCount {
		return nil, NewValidationError("numbers", fmt.Sprintf("exactly %d values required, got %d", NumbersCount, len(values)))
	}

	seen := make(map[int]struct{}, NumbersCount)
	out := make(Numbers, 0, NumbersCount)
	for _, v := range values {
		if v < NumbersMin || v > NumbersMax {
			return nil, NewValidationError("numbers", fmt.Sprintf("%d is outside %d..%d", v, NumbersMin, NumbersMax))
		}
		if _, ok := seen[v]; ok {
			return nil, NewValidationError("numbers", fmt.Sprintf("%d appears more than once", v))
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)

	return out, nil
}

// ParseNumbers parses a space-delimited string such as "3 12 27 40 55 59".
func ParseNumbers(s string) (Numbers, error) {
	fields := strings.Fields(s)
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, NewValidationError("numbers", fmt.Sprintf("%q is not an integer", f))
		}
		values = append(values, v)
	}

	return NewNumbers(values)
}

// String returns the canonical encoding: ascending, single-space separated.
func (n Numbers) String() string {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
