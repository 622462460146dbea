package seed

import (
	"strings"
	"testing"

	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBins(t *testing.T) {
	input := `bin,sku,quantity,capacity,unit_price
A-01-1-01,SKU-1,100,150,2.50
A-01-1-02, SKU-1 ,40,150,2.50
`
	bins, err := LoadBins(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, bins, 2)

	assert.Equal(t, domain.BinKey{Zone: "A", Aisle: 1, Level: 1, Position: 1}, bins[0].Key)
	assert.Equal(t, "SKU-1", bins[0].SKU)
	assert.Equal(t, 100, bins[0].Quantity)
	assert.Equal(t, 150, bins[0].Capacity)
	assert.True(t, decimal.NewFromFloat(2.5).Equal(bins[0].UnitPrice))

	// whitespace in cells is trimmed
	assert.Equal(t, "SKU-1", bins[1].SKU)
}

func TestLoadBins_NoHeaderRow(t *testing.T) {
	bins, err := LoadBins(strings.NewReader("B-02-1-03,SKU-9,5,10,1.00\n"))
	require.NoError(t, err)
	require.Len(t, bins, 1)
	assert.Equal(t, "SKU-9", bins[0].SKU)
}

func TestLoadBins_BadRows(t *testing.T) {
	cases := map[string]string{
		"bad bin code":  "not-a-bin,SKU-1,1,10,1.00\n",
		"bad quantity":  "A-01-1-01,SKU-1,abc,10,1.00\n",
		"bad capacity":  "A-01-1-01,SKU-1,1,abc,1.00\n",
		"bad price":     "A-01-1-01,SKU-1,1,10,abc\n",
		"missing field": "A-01-1-01,SKU-1,1,10\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadBins(strings.NewReader(input))
			require.Error(t, err)
		})
	}
}

func TestLoadDemandProfiles(t *testing.T) {
	input := `sku,daily_demand,lead_time_days,demand_std_dev,service_level_z
SKU-1,50,10,10,1.65
SKU-2,2.5,7,0.5,
`
	profiles, err := LoadDemandProfiles(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, domain.DemandProfile{
		SKU:           "SKU-1",
		DailyDemand:   50,
		LeadTimeDays:  10,
		DemandStdDev:  10,
		ServiceLevelZ: 1.65,
	}, profiles[0])

	// empty z means "use the configured default"
	assert.Zero(t, profiles[1].ServiceLevelZ)
	assert.Equal(t, 2.5, profiles[1].DailyDemand)
}

func TestLoadCatalog(t *testing.T) {
	input := `sku,name,uom,unit_price
SKU-1,Widget,EA,2.50
`
	entries, err := LoadCatalog(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "SKU-1", entries[0].Code)
	assert.Equal(t, "Widget", entries[0].Name)
	assert.Equal(t, "EA", entries[0].UoM)
	assert.True(t, decimal.NewFromFloat(2.5).Equal(entries[0].UnitPrice))
}

func TestLoadCatalog_Empty(t *testing.T) {
	entries, err := LoadCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
