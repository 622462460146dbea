// internal/domain/class.go
package domain

import "strings"

var abcClassLabels = map[int]string{
	0: "A",
	1: "B",
	2: "C",
}

var abcClassRanks = map[string]int{
	"a": 0,
	"b": 1,
	"c": 2,
}

// ABCClassLabel returns the class label for a rank (0 is the highest tier).
func ABCClassLabel(rank int) string {
	if label, ok := abcClassLabels[rank]; ok {
		return label
	}

	return "C"
}

// ParseABCClass returns the rank for a class label (case-insensitive).
func ParseABCClass(label string) (int, bool) {
	rank, ok := abcClassRanks[strings.ToLower(label)]

	return rank, ok
}
