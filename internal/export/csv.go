// internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/andresuchdata/autowms/internal/domain"
)

var binHeader = []string{"Bin", "SKU", "Name", "Qty", "UoM", "Cap", "Zone", "Aisle", "Level", "Pos", "Value"}

var draftHeader = []string{"SKU", "Name", "Qty", "Vendor", "ETA"}

// WriteBinCSV writes a bin listing in the export column layout. Name and
// unit of measure come from the catalog; Value is quantity x unit price.
func WriteBinCSV(w io.Writer, bins []domain.BinRecord, catalog *domain.Catalog) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(binHeader); err != nil {
		return fmt.Errorf("write bin header: %w", err)
	}

	for _, bin := range bins {
		info := catalog.Lookup(bin.SKU)
		row := []string{
			bin.Key.String(),
			bin.SKU,
			info.Name,
			strconv.Itoa(bin.Quantity),
			info.UoM,
			strconv.Itoa(bin.Capacity),
			bin.Key.Zone,
			strconv.Itoa(bin.Key.Aisle),
			strconv.Itoa(bin.Key.Level),
			strconv.Itoa(bin.Key.Position),
			bin.Value().StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write bin row %s: %w", bin.Key, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDraftCSV writes staged draft order lines in the export column layout.
func WriteDraftCSV(w io.Writer, lines []domain.DraftOrderLine, catalog *domain.Catalog) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(draftHeader); err != nil {
		return fmt.Errorf("write draft header: %w", err)
	}

	for _, line := range lines {
		info := catalog.Lookup(line.SKU)
		eta := ""
		if !line.ETA.IsZero() {
			eta = line.ETA.Format("2006-01-02")
		}
		row := []string{
			line.SKU,
			info.Name,
			strconv.Itoa(line.Quantity),
			line.Vendor,
			eta,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write draft row %s: %w", line.SKU, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
