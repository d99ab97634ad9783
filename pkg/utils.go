package pkg

import "math"

func Filter[T any](items []T, predicate func(T) bool) []T {
	filtered := []T{}
	for _, item := range items {
		if predicate(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Converts a value suspected to be either an int or float64 to an int.
// json decodes every number as float64, so request payloads go through this.
func NumToInt(num any) int {
	switch num := num.(type) {
	case int:
		return num
	case int64:
		return int(num)
	case float64:
		return int(num)
	}
	return 0
}

// IsWholeNumber reports whether a json decoded number has no fractional part.
func IsWholeNumber(num float64) bool {
	return !math.IsInf(num, 0) && !math.IsNaN(num) && num == math.Trunc(num)
}
