package fetchers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	currency "github.com/malusev998/currency-rates"
)

var _ currency.Fetcher = FreeCurrencyAPIFetcher{}

// FreeCurrencyAPIFetcher asks the freecurrencyapi.com "latest" endpoint for
// a single pair. It neither caches nor retries.
type FreeCurrencyAPIFetcher struct {
	url    string
	apiKey string
	client *http.Client
	logger *zap.Logger
}

func (f FreeCurrencyAPIFetcher) handleHTTPStatusCodeError(res *http.Response, body []byte) error {
	errorRes := errorResponse{}

	if err := json.Unmarshal(body, &errorRes); err == nil && errorRes.Message != nil {
		return currency.ProviderError(*errorRes.Message)
	}

	return currency.BadServerResponse(res.StatusCode)
}

func (f FreeCurrencyAPIFetcher) Fetch(ctx context.Context, pair currency.Pair) (float64, error) {
	req, err := getData(ctx, f.url, map[string]string{
		"apikey":        f.apiKey,
		"currencies":    pair.Target,
		"base_currency": pair.Base,
	})

	if err != nil {
		return 0, currency.InvalidRequest(err.Error())
	}

	f.logger.Debug("requesting latest rate", zap.Stringer("pair", pair))

	res, err := f.client.Do(req)

	if err != nil {
		return 0, currency.TransportFailure(err.Error())
	}

	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return 0, currency.TransportFailure(err.Error())
	}

	f.logger.Debug("received latest rate response",
		zap.Stringer("pair", pair),
		zap.Int("status", res.StatusCode),
		zap.Int("bytes", len(body)),
	)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return 0, f.handleHTTPStatusCodeError(res, body)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return 0, currency.EmptyResponse()
	}

	var data latestRatesResponse

	if err := json.Unmarshal(body, &data); err != nil {
		return 0, currency.MalformedResponse(err.Error())
	}

	if data.Data == nil {
		return 0, currency.MalformedResponse("response has no data object")
	}

	rate, ok := data.Data[pair.Target]

	if !ok || rate == nil {
		return 0, currency.RateNotFound(pair.Target)
	}

	if *rate <= 0 {
		return 0, currency.MalformedResponse("non-positive rate " + strconv.FormatFloat(*rate, 'g', -1, 64))
	}

	return *rate, nil
}
