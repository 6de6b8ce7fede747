package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stonksapp/stonks/config"
	"github.com/stonksapp/stonks/date"
)

// https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/documentacao
const (
	ptaxPath           = "/olinda/servico/PTAX/versao/v1/odata/CotacaoDolarPeriodo(dataInicial=@dataInicial,dataFinalCotacao=@dataFinalCotacao)"
	ptaxDateFormat     = "'01-02-2006'"
	ptaxDatetimeFormat = "2006-01-02 15:04:05.999"
)

// Client fetches PTAX rates from BCB (the Brazilian central bank). They are
// required to convert cost basis from USD to BRL for tax filing.
type Client struct {
	http *resty.Client
}

func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.BCBUrl)
	return &Client{http: client}
}

type ptaxQuote struct {
	BuyingRate  decimal.Decimal `json:"cotacaoCompra"`
	SellingRate decimal.Decimal `json:"cotacaoVenda"`
	Timestamp   string          `json:"dataHoraCotacao"`
}

type ptaxResponse struct {
	Value []ptaxQuote `json:"value"`
}

// USDRates returns the published USD/BRL quotes for [start, end], ordered by
// date. Business days only; the caller forward-fills.
func (c *Client) USDRates(ctx context.Context, start, end date.Date) ([]DailyRate, error) {
	params := map[string]string{
		"@dataInicial":      start.Format(ptaxDateFormat),
		"@dataFinalCotacao": end.Format(ptaxDateFormat),
		"$format":           "json",
		"$orderby":          "dataHoraCotacao",
	}

	zap.L().Debug("fetching PTAX rates",
		zap.String("start", start.String()), zap.String("end", end.String()))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(ptaxPath)
	if err != nil {
		return nil, fmt.Errorf("fetching PTAX rates: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching PTAX rates: status %s", resp.Status())
	}

	var body ptaxResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decoding PTAX response: %w", err)
	}

	rates := make([]DailyRate, 0, len(body.Value))
	for _, q := range body.Value {
		ts, err := time.Parse(ptaxDatetimeFormat, q.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("decoding PTAX quote date %q: %w", q.Timestamp, err)
		}
		d := date.NewFromTime(ts)

		// the service occasionally publishes two quotes for one date; the
		// later one wins
		if n := len(rates); n > 0 && rates[n-1].Date.Equal(d) {
			rates = rates[:n-1]
		}
		rates = append(rates, DailyRate{Date: d, BuyingRate: q.BuyingRate, SellingRate: q.SellingRate})
	}

	zap.L().Debug("fetched PTAX rates", zap.Int("days", len(rates)))
	return rates, nil
}
