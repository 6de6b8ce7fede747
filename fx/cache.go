package fx

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/stonksapp/stonks/date"
)

// RatesCache persists fetched rates between runs so BCB is only hit for
// years not seen before.
type RatesCache interface {
	Write(year int, rates []DailyRate) error
	Read(year int) ([]DailyRate, error)
}

// CsvRatesCache keeps one CSV file per year (date, buying rate, selling
// rate) under Dir.
type CsvRatesCache struct {
	Dir string
}

// DefaultCacheDir resolves the per-user rates directory, creating it if
// needed.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".stonks")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func (c *CsvRatesCache) path(year int) string {
	return filepath.Join(c.Dir, fmt.Sprintf("ptax-%d.csv", year))
}

func (c *CsvRatesCache) Write(year int, rates []DailyRate) (err error) {
	file, err := os.OpenFile(c.path(year), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	csvW := csv.NewWriter(file)
	for _, rate := range rates {
		row := []string{rate.Date.String(), rate.BuyingRate.String(), rate.SellingRate.String()}
		if err = csvW.Write(row); err != nil {
			return err
		}
	}
	csvW.Flush()
	return csvW.Error()
}

func (c *CsvRatesCache) Read(year int) ([]DailyRate, error) {
	file, err := os.Open(c.path(year))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	csvR := csv.NewReader(file)
	csvR.FieldsPerRecord = 3
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, err
	}

	rates := make([]DailyRate, 0, len(records))
	for _, record := range records {
		d, err := date.Parse(date.DefaultFormat, record[0])
		if err != nil {
			return nil, fmt.Errorf("bad date in rates cache: %w", err)
		}
		buying, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("bad buying rate in rates cache: %w", err)
		}
		selling, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("bad selling rate in rates cache: %w", err)
		}
		rates = append(rates, DailyRate{Date: d, BuyingRate: buying, SellingRate: selling})
	}
	return rates, nil
}
