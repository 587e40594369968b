package currency_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-rates"
)

func TestRateError_Is(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	values := []struct {
		err      error
		sentinel error
		kind     currency.Kind
		message  string
	}{
		{currency.InvalidRequest("bad url"), currency.ErrInvalidRequest, currency.KindInvalidRequest, "invalid request: bad url"},
		{currency.TransportFailure("connection refused"), currency.ErrTransportFailure, currency.KindTransportFailure, "transport failure: connection refused"},
		{currency.BadServerResponse(503), currency.ErrBadServerResponse, currency.KindBadServerResponse, "bad server response: 503 Service Unavailable"},
		{currency.ProviderError("Invalid authentication credentials"), currency.ErrProviderError, currency.KindProviderError, "provider error: Invalid authentication credentials"},
		{currency.EmptyResponse(), currency.ErrEmptyResponse, currency.KindEmptyResponse, "empty response: no data received from the provider"},
		{currency.RateNotFound("PHP"), currency.ErrRateNotFound, currency.KindRateNotFound, "exchange rate not found for PHP"},
		{currency.MalformedResponse("unexpected end of JSON input"), currency.ErrMalformedResponse, currency.KindMalformedResponse, "malformed response: unexpected end of JSON input"},
		{currency.ProviderError(""), currency.ErrProviderError, currency.KindProviderError, "provider error"},
	}

	for _, value := range values {
		assert.True(errors.Is(value.err, value.sentinel))
		assert.Equal(value.kind, currency.KindOf(value.err))
		assert.Equal(value.message, value.err.Error())

		wrapped := fmt.Errorf("fetching USD-PHP: %w", value.err)
		assert.True(errors.Is(wrapped, value.sentinel))
		assert.Equal(value.kind, currency.KindOf(wrapped))
	}
}

func TestRateError_DistinctKinds(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	err := currency.RateNotFound("HKD")

	assert.False(errors.Is(err, currency.ErrTransportFailure))
	assert.False(errors.Is(err, currency.ErrMalformedResponse))

	var rateErr *currency.RateError
	assert.True(errors.As(err, &rateErr))
	assert.Equal("HKD", rateErr.Currency)
}

func TestKindOf_Unknown(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	assert.Equal(currency.KindUnknown, currency.KindOf(errors.New("boom")))
	assert.Equal(currency.KindUnknown, currency.KindOf(nil))
	assert.Equal("unknown", currency.KindUnknown.String())
	assert.Equal("rateNotFound", currency.KindRateNotFound.String())
}
