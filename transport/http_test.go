package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/metrics"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Rate(ctx context.Context, pair currency.Pair, forceFetch bool) (float64, error) {
	args := m.Called(ctx, pair, forceFetch)

	return args.Get(0).(float64), args.Error(1)
}

var usdPhp = currency.Pair{Base: "USD", Target: "PHP"}

func serve(server *Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(method, target, nil))

	return w
}

func TestServer_Rate(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		assert := require.New(t)
		rates := &MockRateProvider{}
		rates.On("Rate", mock.Anything, usdPhp, false).Return(56.78, nil).Once()

		w := serve(NewServer(rates, nil, zap.NewNop()), http.MethodGet, "/api/rate?base=usd&target=PHP")

		assert.Equal(http.StatusOK, w.Code)
		assert.Equal("application/json", w.Header().Get("Content-Type"))
		assert.NotEmpty(w.Header().Get("X-Request-ID"))
		assert.JSONEq(`{"base":"USD","target":"PHP","rate":56.78}`, w.Body.String())
		rates.AssertExpectations(t)
	})

	t.Run("Force", func(t *testing.T) {
		assert := require.New(t)
		rates := &MockRateProvider{}
		rates.On("Rate", mock.Anything, usdPhp, true).Return(56.91, nil).Once()

		w := serve(NewServer(rates, nil, nil), http.MethodGet, "/api/rate?base=USD&target=PHP&force=true")

		assert.Equal(http.StatusOK, w.Code)
		assert.JSONEq(`{"base":"USD","target":"PHP","rate":56.91}`, w.Body.String())
		rates.AssertExpectations(t)
	})

	t.Run("InvalidCode", func(t *testing.T) {
		assert := require.New(t)
		rates := &MockRateProvider{}

		w := serve(NewServer(rates, nil, nil), http.MethodGet, "/api/rate?base=US&target=PHP")

		assert.Equal(http.StatusBadRequest, w.Code)
		assert.Contains(w.Body.String(), "currency code must be three letters")
		rates.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		w := serve(NewServer(&MockRateProvider{}, nil, nil), http.MethodPost, "/api/rate?base=USD&target=PHP")

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("Failure", func(t *testing.T) {
		assert := require.New(t)
		rates := &MockRateProvider{}
		rates.On("Rate", mock.Anything, usdPhp, false).Return(0.0, currency.RateNotFound("PHP")).Once()

		w := serve(NewServer(rates, nil, nil), http.MethodGet, "/api/rate?base=USD&target=PHP")

		assert.Equal(http.StatusBadGateway, w.Code)
		assert.JSONEq(`{"error":"exchange rate not found for PHP","kind":"rateNotFound"}`, w.Body.String())
	})
}

func TestServer_Convert(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		assert := require.New(t)
		rates := &MockRateProvider{}
		rates.On("Rate", mock.Anything, usdPhp, false).Return(56.78, nil).Once()

		w := serve(NewServer(rates, nil, nil), http.MethodGet, "/api/convert?base=USD&target=PHP&amount=10")

		assert.Equal(http.StatusOK, w.Code)
		assert.JSONEq(`{"base":"USD","target":"PHP","rate":56.78,"amount":"10","converted":"567.8"}`, w.Body.String())
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		assert := require.New(t)
		rates := &MockRateProvider{}

		w := serve(NewServer(rates, nil, nil), http.MethodGet, "/api/convert?base=USD&target=PHP&amount=ten")

		assert.Equal(http.StatusBadRequest, w.Code)
		rates.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AmountOutOfRange", func(t *testing.T) {
		assert := require.New(t)
		rates := &MockRateProvider{}

		w := serve(NewServer(rates, nil, nil), http.MethodGet, "/api/convert?base=USD&target=PHP&amount=1e20000000")

		assert.Equal(http.StatusBadRequest, w.Code)
		assert.JSONEq(`{"error":"amount must be a number"}`, w.Body.String())
		rates.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure", func(t *testing.T) {
		assert := require.New(t)
		rates := &MockRateProvider{}
		rates.On("Rate", mock.Anything, usdPhp, false).Return(0.0, currency.TransportFailure("timeout")).Once()

		w := serve(NewServer(rates, nil, nil), http.MethodGet, "/api/convert?base=USD&target=PHP&amount=10")

		assert.Equal(http.StatusBadGateway, w.Code)
		assert.Contains(w.Body.String(), `"kind":"transportFailure"`)
	})
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	registry := prometheus.NewRegistry()
	metrics.New(registry).Failure()

	w := serve(NewServer(&MockRateProvider{}, registry, nil), http.MethodGet, "/metrics")

	assert.Equal(http.StatusOK, w.Code)
	assert.True(strings.Contains(w.Body.String(), "currency_rates_failures_total 1"))

	w = serve(NewServer(&MockRateProvider{}, nil, nil), http.MethodGet, "/metrics")
	assert.Equal(http.StatusNotFound, w.Code)
}
