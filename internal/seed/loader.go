// internal/seed/loader.go
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/shopspring/decimal"
)

// CSV loaders for the engine's external inputs. Seed data is an opaque
// input from the seeding/forecasting collaborator; the engine does not
// generate any of it.

// LoadBins parses a bin seed CSV with columns:
//
//	bin,sku,quantity,capacity,unit_price
func LoadBins(r io.Reader) ([]domain.BinRecord, error) {
	rows, err := readRows(r, 5, "bin")
	if err != nil {
		return nil, err
	}

	bins := make([]domain.BinRecord, 0, len(rows))
	for i, row := range rows {
		key, err := domain.ParseBinKey(row[0])
		if err != nil {
			return nil, fmt.Errorf("bin seed row %d: %w", i+1, err)
		}

		qty, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("bin seed row %d: quantity %q: %w", i+1, row[2], err)
		}

		capacity, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("bin seed row %d: capacity %q: %w", i+1, row[3], err)
		}

		price, err := decimal.NewFromString(row[4])
		if err != nil {
			return nil, fmt.Errorf("bin seed row %d: unit price %q: %w", i+1, row[4], err)
		}

		bins = append(bins, domain.BinRecord{
			Key:       key,
			SKU:       row[1],
			Quantity:  qty,
			Capacity:  capacity,
			UnitPrice: price,
		})
	}
	return bins, nil
}

// LoadDemandProfiles parses a demand profile CSV with columns:
//
//	sku,daily_demand,lead_time_days,demand_std_dev,service_level_z
func LoadDemandProfiles(r io.Reader) ([]domain.DemandProfile, error) {
	rows, err := readRows(r, 5, "sku")
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.DemandProfile, 0, len(rows))
	for i, row := range rows {
		daily, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("demand seed row %d: daily demand %q: %w", i+1, row[1], err)
		}

		leadTime, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("demand seed row %d: lead time %q: %w", i+1, row[2], err)
		}

		stdDev, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("demand seed row %d: std dev %q: %w", i+1, row[3], err)
		}

		z := 0.0
		if row[4] != "" {
			z, err = strconv.ParseFloat(row[4], 64)
			if err != nil {
				return nil, fmt.Errorf("demand seed row %d: z %q: %w", i+1, row[4], err)
			}
		}

		profiles = append(profiles, domain.DemandProfile{
			SKU:           row[0],
			DailyDemand:   daily,
			LeadTimeDays:  leadTime,
			DemandStdDev:  stdDev,
			ServiceLevelZ: z,
		})
	}
	return profiles, nil
}

// LoadCatalog parses SKU reference data with columns:
//
//	sku,name,uom,unit_price
func LoadCatalog(r io.Reader) ([]domain.SKUInfo, error) {
	rows, err := readRows(r, 4, "sku")
	if err != nil {
		return nil, err
	}

	entries := make([]domain.SKUInfo, 0, len(rows))
	for i, row := range rows {
		price, err := decimal.NewFromString(row[3])
		if err != nil {
			return nil, fmt.Errorf("catalog seed row %d: unit price %q: %w", i+1, row[3], err)
		}

		entries = append(entries, domain.SKUInfo{
			Code:      row[0],
			Name:      row[1],
			UoM:       row[2],
			UnitPrice: price,
		})
	}
	return entries, nil
}

// readRows reads all CSV records, trims cells, and drops an optional header
// row (detected by its first column label).
func readRows(r io.Reader, fields int, headerFirstCol string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = fields
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read seed csv: %w", err)
	}

	rows := make([][]string, 0, len(records))
	for i, record := range records {
		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
		if i == 0 && strings.EqualFold(record[0], headerFirstCol) {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}
