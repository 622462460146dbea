// internal/domain/catalog.go
package domain

import "sort"

// Catalog is the read-only SKU reference data the engine consumes.
// Lookups for unknown SKUs return a zero-value entry carrying the code,
// so exports never fail on catalog gaps.
type Catalog struct {
	skus map[string]SKUInfo
}

// NewCatalog builds a catalog from a list of SKU entries.
func NewCatalog(entries []SKUInfo) *Catalog {
	skus := make(map[string]SKUInfo, len(entries))
	for _, e := range entries {
		if e.Code == "" {
			continue
		}
		skus[e.Code] = e
	}
	return &Catalog{skus: skus}
}

// Lookup returns the catalog entry for a SKU code.
func (c *Catalog) Lookup(code string) SKUInfo {
	if info, ok := c.skus[code]; ok {
		return info
	}
	return SKUInfo{Code: code}
}

// Has reports whether the SKU is known to the catalog.
func (c *Catalog) Has(code string) bool {
	_, ok := c.skus[code]
	return ok
}

// Codes returns all known SKU codes in ascending order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.skus))
	for code := range c.skus {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
