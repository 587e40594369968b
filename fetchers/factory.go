package fetchers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

type (
	Config struct {
		URL     string
		APIKey  string
		Timeout time.Duration
		// Client overrides the HTTP client built from Timeout.
		Client *http.Client
	}
)

func NewFreeCurrencyAPIFetcher(config Config, logger *zap.Logger) FreeCurrencyAPIFetcher {
	url := config.URL

	if url == "" {
		url = FreeCurrencyAPIURL
	}

	client := config.Client

	if client == nil {
		timeout := config.Timeout

		if timeout <= 0 {
			timeout = DefaultTimeout
		}

		client = &http.Client{Timeout: timeout}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return FreeCurrencyAPIFetcher{
		url:    url,
		apiKey: config.APIKey,
		client: client,
		logger: logger,
	}
}
