package fx

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stonksapp/stonks/date"
)

// RateLoader loads PTAX rates a year at a time, preferring the local cache
// over BCB. The current year is never served from cache since its file would
// always be stale.
type RateLoader struct {
	client        *Client
	cache         RatesCache
	forceDownload bool
	yearRates     map[int][]DailyRate
}

func NewRateLoader(client *Client, cache RatesCache, forceDownload bool) *RateLoader {
	return &RateLoader{
		client:        client,
		cache:         cache,
		forceDownload: forceDownload,
		yearRates:     make(map[int][]DailyRate),
	}
}

func (l *RateLoader) ratesForYear(ctx context.Context, year int) ([]DailyRate, error) {
	if rates, ok := l.yearRates[year]; ok {
		return rates, nil
	}

	fromCache := !l.forceDownload && year != date.Today().Year()
	if fromCache {
		rates, err := l.cache.Read(year)
		if err == nil {
			l.yearRates[year] = rates
			return rates, nil
		}
		zap.L().Debug("no usable rates cache, fetching from BCB",
			zap.Int("year", year), zap.Error(err))
	}

	end := date.New(year, time.December, 31)
	if today := date.Today(); end.After(today) {
		end = today
	}
	rates, err := l.client.USDRates(ctx, date.New(year, time.January, 1), end)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Write(year, rates); err != nil {
		zap.L().Warn("failed to update rates cache", zap.Int("year", year), zap.Error(err))
	}
	l.yearRates[year] = rates
	return rates, nil
}

// Table returns a forward-filled rate table covering [start, end]. Whole
// years are loaded so the fill never lacks a seed observation mid-range.
func (l *RateLoader) Table(ctx context.Context, start, end date.Date) (*Table, error) {
	var all []DailyRate
	for year := start.Year(); year <= end.Year(); year++ {
		rates, err := l.ratesForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		all = append(all, rates...)
	}
	return NewTable(all, date.New(start.Year(), time.January, 1), end), nil
}
