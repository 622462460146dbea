// internal/domain/binkey.go
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// BinKey is the composite identity of a bin: zone, aisle, level, position.
// Its canonical rendering is the bin code, e.g. "A-03-2-05" (aisle and
// position zero-padded to two digits).
type BinKey struct {
	Zone     string `json:"zone"`
	Aisle    int    `json:"aisle"`
	Level    int    `json:"level"`
	Position int    `json:"position"`
}

// String renders the canonical bin code.
func (k BinKey) String() string {
	return fmt.Sprintf("%s-%02d-%d-%02d", k.Zone, k.Aisle, k.Level, k.Position)
}

// Less orders bin keys ascending by zone, aisle, level, position.
func (k BinKey) Less(other BinKey) bool {
	if k.Zone != other.Zone {
		return k.Zone < other.Zone
	}
	if k.Aisle != other.Aisle {
		return k.Aisle < other.Aisle
	}
	if k.Level != other.Level {
		return k.Level < other.Level
	}
	return k.Position < other.Position
}

// MarshalText makes BinKey usable as a JSON object key and CSV cell.
func (k BinKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a canonical bin code.
func (k *BinKey) UnmarshalText(text []byte) error {
	parsed, err := ParseBinKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseBinKey parses a bin code of the form zone-aisle-level-position.
// The zone is any non-empty token without a dash; the numeric parts are
// base-10 integers (zero padding accepted).
func ParseBinKey(code string) (BinKey, error) {
	parts := strings.Split(code, "-")
	if len(parts) != 4 {
		return BinKey{}, fmt.Errorf("%w: bin code %q", ErrMalformedCommand, code)
	}

	zone := strings.TrimSpace(parts[0])
	if zone == "" {
		return BinKey{}, fmt.Errorf("%w: bin code %q has empty zone", ErrMalformedCommand, code)
	}

	nums := make([]int, 3)
	for i, part := range parts[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return BinKey{}, fmt.Errorf("%w: bin code %q has non-numeric segment %q", ErrMalformedCommand, code, part)
		}
		nums[i] = n
	}

	return BinKey{Zone: zone, Aisle: nums[0], Level: nums[1], Position: nums[2]}, nil
}
