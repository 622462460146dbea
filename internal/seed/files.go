// internal/seed/files.go
package seed

import (
	"fmt"
	"os"

	"github.com/andresuchdata/autowms/internal/domain"
)

// File variants of the loaders. A missing file is not an error: the engine
// simply starts without that data set.

func LoadBinsFile(path string) ([]domain.BinRecord, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open bin seed %s: %w", path, err)
	}
	defer f.Close()
	return LoadBins(f)
}

func LoadDemandProfilesFile(path string) ([]domain.DemandProfile, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open demand seed %s: %w", path, err)
	}
	defer f.Close()
	return LoadDemandProfiles(f)
}

func LoadCatalogFile(path string) ([]domain.SKUInfo, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog seed %s: %w", path, err)
	}
	defer f.Close()
	return LoadCatalog(f)
}
