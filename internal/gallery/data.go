package gallery

import (
	"embed"
	"fmt"

	"plotkit/internal/dataset"
)

//go:embed data/*.csv
var sampleData embed.FS

// Age group column names as they appear after renaming the wide columns
const (
	AgeOver40  = "+ 40"
	AgeUnder40 = "< 40"
)

func readSample(name string) (*dataset.Dataset, error) {
	f, err := sampleData.Open("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample %s: %w", name, err)
	}
	defer f.Close()

	ds, err := dataset.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample %s: %w", name, err)
	}
	return ds, nil
}

// ProfitByAgeGroup returns the campaign results in long form: one row per
// intervention and age group with its true positive rate and the
// intervention's profit.
func ProfitByAgeGroup() (*dataset.Dataset, error) {
	wide, err := readSample("max_profit_by_age_group.csv")
	if err != nil {
		return nil, err
	}
	wide, err = wide.Rename(map[string]string{
		"TruePositiveRate0": AgeOver40,
		"TruePositiveRate1": AgeUnder40,
	})
	if err != nil {
		return nil, err
	}
	return wide.Melt(
		[]string{"IntervationName", "Profit"},
		[]string{AgeOver40, AgeUnder40},
		"GroupName", "TruePositiveRate",
	)
}

// DailySales returns total sales per day
func DailySales() (*dataset.Dataset, error) {
	return readSample("daily_sales.csv")
}

// DailySalesByStore returns daily sales of the first five stores
func DailySalesByStore() (*dataset.Dataset, error) {
	ds, err := readSample("daily_sales_by_store.csv")
	if err != nil {
		return nil, err
	}
	return ds.FilterFloat("store", func(v float64) bool { return v < 6 })
}

// YearlySalesByStore returns sales per store and year
func YearlySalesByStore() (*dataset.Dataset, error) {
	return readSample("yearly_sales_by_store.csv")
}
