package fx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCsvRatesCacheRoundtrip(t *testing.T) {
	cache := &CsvRatesCache{Dir: t.TempDir()}

	rates := []DailyRate{
		dailyRate(2023, time.March, 1, "5.2094", "5.21"),
		dailyRate(2023, time.March, 2, "5.1871", "5.1877"),
	}
	require.NoError(t, cache.Write(2023, rates))

	got, err := cache.Read(2023)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(rates, got, rateCmpOpts))
}

func TestCsvRatesCacheMissingYear(t *testing.T) {
	cache := &CsvRatesCache{Dir: t.TempDir()}
	_, err := cache.Read(2019)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCsvRatesCacheCorruptFile(t *testing.T) {
	dir := t.TempDir()
	cache := &CsvRatesCache{Dir: dir}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ptax-2023.csv"),
		[]byte("2023-03-01,not-a-rate,5.21\n"), 0600))

	_, err := cache.Read(2023)
	require.ErrorContains(t, err, "bad buying rate")
}
