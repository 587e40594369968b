package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const (
	FreeCurrencyAPIURL = "https://api.freecurrencyapi.com/v1/latest"
)

type (
	errorResponse struct {
		Message *string `json:"message"`
	}

	latestRatesResponse struct {
		Data map[string]*float64 `json:"data"`
	}
)

var (
	ErrMissingScheme = errors.New("url must be absolute")
)

func getData(ctx context.Context, rawURL string, query map[string]string) (*http.Request, error) {
	u, err := url.Parse(rawURL)

	if err != nil {
		return nil, err
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingScheme, rawURL)
	}

	q := u.Query()
	for key, value := range query {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)

	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")

	return req, nil
}
