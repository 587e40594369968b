package currency

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why obtaining a rate failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRequest
	KindTransportFailure
	KindBadServerResponse
	KindProviderError
	KindEmptyResponse
	KindRateNotFound
	KindMalformedResponse
)

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrTransportFailure  = errors.New("transport failure")
	ErrBadServerResponse = errors.New("bad server response")
	ErrProviderError     = errors.New("provider error")
	ErrEmptyResponse     = errors.New("empty response")
	ErrRateNotFound      = errors.New("exchange rate not found")
	ErrMalformedResponse = errors.New("malformed response")
)

var kindSentinels = map[Kind]error{
	KindInvalidRequest:    ErrInvalidRequest,
	KindTransportFailure:  ErrTransportFailure,
	KindBadServerResponse: ErrBadServerResponse,
	KindProviderError:     ErrProviderError,
	KindEmptyResponse:     ErrEmptyResponse,
	KindRateNotFound:      ErrRateNotFound,
	KindMalformedResponse: ErrMalformedResponse,
}

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalidRequest"
	case KindTransportFailure:
		return "transportFailure"
	case KindBadServerResponse:
		return "badServerResponse"
	case KindProviderError:
		return "providerError"
	case KindEmptyResponse:
		return "emptyResponse"
	case KindRateNotFound:
		return "rateNotFound"
	case KindMalformedResponse:
		return "malformedResponse"
	}

	return "unknown"
}

// RateError is the failure returned by a Fetcher. Match it with errors.Is
// against the Err* sentinels or errors.As for the details.
type RateError struct {
	Kind Kind
	// Message carries the transport, provider or decoder message.
	Message string
	// StatusCode is set for KindBadServerResponse.
	StatusCode int
	// Currency is set for KindRateNotFound.
	Currency string
}

func (e *RateError) Error() string {
	switch e.Kind {
	case KindBadServerResponse:
		return fmt.Sprintf("%v: %d %s", ErrBadServerResponse, e.StatusCode, http.StatusText(e.StatusCode))
	case KindEmptyResponse:
		return fmt.Sprintf("%v: no data received from the provider", ErrEmptyResponse)
	case KindRateNotFound:
		return fmt.Sprintf("%v for %s", ErrRateNotFound, e.Currency)
	}

	sentinel, ok := kindSentinels[e.Kind]

	if e.Message == "" {
		if ok {
			return sentinel.Error()
		}

		return e.Kind.String()
	}

	if ok {
		return fmt.Sprintf("%v: %s", sentinel, e.Message)
	}

	return e.Message
}

func (e *RateError) Unwrap() error {
	return kindSentinels[e.Kind]
}

func InvalidRequest(message string) error {
	return &RateError{Kind: KindInvalidRequest, Message: message}
}

func TransportFailure(message string) error {
	return &RateError{Kind: KindTransportFailure, Message: message}
}

func BadServerResponse(statusCode int) error {
	return &RateError{Kind: KindBadServerResponse, StatusCode: statusCode}
}

func ProviderError(message string) error {
	return &RateError{Kind: KindProviderError, Message: message}
}

func EmptyResponse() error {
	return &RateError{Kind: KindEmptyResponse}
}

func RateNotFound(code string) error {
	return &RateError{Kind: KindRateNotFound, Currency: code}
}

func MalformedResponse(message string) error {
	return &RateError{Kind: KindMalformedResponse, Message: message}
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var rateErr *RateError
	if errors.As(err, &rateErr) {
		return rateErr.Kind
	}

	return KindUnknown
}
