// internal/abc/classifier.go
package abc

import (
	"sort"

	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/shopspring/decimal"
)

// Item is one SKU's annual consumption value, the classifier's input.
type Item struct {
	SKU         string
	AnnualValue decimal.Decimal
}

// Thresholds are the cumulative-percentage boundaries between classes.
// An item whose cumulative share crosses a boundary belongs to the class
// it crosses into (the comparison is <=).
type Thresholds struct {
	ClassA float64
	ClassB float64
}

// DefaultThresholds is the classic 80/95 split.
var DefaultThresholds = Thresholds{ClassA: 80, ClassB: 95}

// Classify ranks items by annual value and assigns A/B/C classes by
// cumulative value share. It is a pure function: input order does not
// matter and ties are broken by SKU ascending so results are deterministic.
func Classify(items []Item, thresholds Thresholds) []domain.ABCBucket {
	ranked := make([]Item, len(items))
	copy(ranked, items)

	sort.Slice(ranked, func(i, j int) bool {
		cmp := ranked[i].AnnualValue.Cmp(ranked[j].AnnualValue)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].SKU < ranked[j].SKU
	})

	total := decimal.Zero
	for _, item := range ranked {
		total = total.Add(item.AnnualValue)
	}

	buckets := make([]domain.ABCBucket, 0, len(ranked))
	cumulative := decimal.Zero
	for _, item := range ranked {
		bucket := domain.ABCBucket{
			SKU:         item.SKU,
			AnnualValue: item.AnnualValue,
		}

		if total.IsZero() {
			// No value anywhere: every item is class C at 0%
			bucket.Class = domain.ABCClassLabel(2)
			buckets = append(buckets, bucket)
			continue
		}

		cumulative = cumulative.Add(item.AnnualValue)
		pct, _ := cumulative.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		bucket.CumulativePct = pct

		switch {
		case pct <= thresholds.ClassA:
			bucket.Class = domain.ABCClassLabel(0)
		case pct <= thresholds.ClassB:
			bucket.Class = domain.ABCClassLabel(1)
		default:
			bucket.Class = domain.ABCClassLabel(2)
		}
		buckets = append(buckets, bucket)
	}

	return buckets
}
