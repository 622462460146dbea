// internal/allocation/parser.go
package allocation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andresuchdata/autowms/internal/domain"
)

// Scan verbs understood by the engine
const (
	VerbPick = "PICK"
	VerbPut  = "PUT"
)

// Scan is a parsed scan command:
//
//	PICK:<sku>:<qty>
//	PUT:<sku>:<qty>[:<binCode>]
type Scan struct {
	Verb      string
	SKU       string
	Qty       int
	TargetBin *domain.BinKey
}

// Parse validates and decodes a scan command string. Any grammar violation
// is reported as ErrMalformedCommand; the ledger is never touched for an
// unparsed command.
func Parse(command string) (Scan, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return Scan{}, fmt.Errorf("%w: empty command", domain.ErrMalformedCommand)
	}

	parts := strings.SplitN(trimmed, ":", 4)
	if len(parts) < 3 {
		return Scan{}, fmt.Errorf("%w: %q", domain.ErrMalformedCommand, command)
	}

	verb := strings.ToUpper(strings.TrimSpace(parts[0]))
	switch verb {
	case VerbPick:
		if len(parts) != 3 {
			return Scan{}, fmt.Errorf("%w: PICK takes sku and qty, got %q", domain.ErrMalformedCommand, command)
		}
	case VerbPut:
	default:
		return Scan{}, fmt.Errorf("%w: unknown verb %q", domain.ErrMalformedCommand, parts[0])
	}

	sku := strings.TrimSpace(parts[1])
	if sku == "" {
		return Scan{}, fmt.Errorf("%w: empty sku in %q", domain.ErrMalformedCommand, command)
	}

	qty, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Scan{}, fmt.Errorf("%w: non-numeric quantity %q", domain.ErrMalformedCommand, parts[2])
	}

	scan := Scan{Verb: verb, SKU: sku, Qty: qty}

	if verb == VerbPut && len(parts) == 4 {
		key, err := domain.ParseBinKey(strings.TrimSpace(parts[3]))
		if err != nil {
			return Scan{}, err
		}
		scan.TargetBin = &key
	}

	return scan, nil
}
