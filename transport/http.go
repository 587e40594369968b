package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	currency "github.com/malusev998/currency-rates"
	"github.com/malusev998/currency-rates/services"
)

// Server exposes a RateProvider over HTTP.
type Server struct {
	rates  currency.RateProvider
	logger *zap.Logger
	router *http.ServeMux
}

type (
	errorResponse struct {
		Error string `json:"error"`
		Kind  string `json:"kind,omitempty"`
	}

	rateResponse struct {
		Base   string  `json:"base"`
		Target string  `json:"target"`
		Rate   float64 `json:"rate"`
	}

	convertResponse struct {
		Base      string  `json:"base"`
		Target    string  `json:"target"`
		Rate      float64 `json:"rate"`
		Amount    string  `json:"amount"`
		Converted string  `json:"converted"`
	}
)

// NewServer registers the API routes, plus /metrics when gatherer is not nil.
func NewServer(rates currency.RateProvider, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		rates:  rates,
		logger: logger,
		router: http.NewServeMux(),
	}

	s.router.HandleFunc("/api/rate", s.rate)
	s.router.HandleFunc("/api/convert", s.convert)

	if gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return s
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

func (s *Server) requestLogger(rw http.ResponseWriter, r *http.Request) *zap.Logger {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	rw.Header().Set("X-Request-ID", requestID)

	return s.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

func (s *Server) pair(rw http.ResponseWriter, r *http.Request) (currency.Pair, bool) {
	if r.Method != http.MethodGet {
		rw.Header().Set("Allow", http.MethodGet)
		writeJSON(rw, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return currency.Pair{}, false
	}

	query := r.URL.Query()
	pair, err := currency.NewPair(query.Get("base"), query.Get("target"))

	if err != nil {
		writeJSON(rw, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return currency.Pair{}, false
	}

	return pair, true
}

func (s *Server) rate(rw http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(rw, r)

	pair, ok := s.pair(rw, r)
	if !ok {
		return
	}

	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	rate, err := s.rates.Rate(r.Context(), pair, force)
	if err != nil {
		logger.Warn("rate request failed", zap.Stringer("pair", pair), zap.Error(err))
		writeRateError(rw, err)
		return
	}

	logger.Debug("rate served", zap.Stringer("pair", pair), zap.Float64("rate", rate))

	writeJSON(rw, http.StatusOK, rateResponse{Base: pair.Base, Target: pair.Target, Rate: rate})
}

func (s *Server) convert(rw http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(rw, r)

	pair, ok := s.pair(rw, r)
	if !ok {
		return
	}

	amount := r.URL.Query().Get("amount")

	if services.Convert(amount, 1) == "" {
		writeJSON(rw, http.StatusBadRequest, errorResponse{Error: "amount must be a number"})
		return
	}

	rate, err := s.rates.Rate(r.Context(), pair, false)
	if err != nil {
		logger.Warn("conversion failed", zap.Stringer("pair", pair), zap.Error(err))
		writeRateError(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, convertResponse{
		Base:      pair.Base,
		Target:    pair.Target,
		Rate:      rate,
		Amount:    amount,
		Converted: services.Convert(amount, rate),
	})
}

func writeRateError(rw http.ResponseWriter, err error) {
	writeJSON(rw, http.StatusBadGateway, errorResponse{
		Error: err.Error(),
		Kind:  currency.KindOf(err).String(),
	})
}

func writeJSON(rw http.ResponseWriter, status int, body interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	_ = json.NewEncoder(rw).Encode(body)
}
