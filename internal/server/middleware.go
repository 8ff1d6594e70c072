package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/erickbogarin/amortiza/internal/calculation"
	"github.com/erickbogarin/amortiza/internal/metrics"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument logs each request and counts it by route template
func (h *handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func isGuardError(err error) bool {
	return errors.Is(err, calculation.ErrInvalidTerms) ||
		errors.Is(err, calculation.ErrInvalidLoanAmount) ||
		errors.Is(err, calculation.ErrUnknownSystem)
}
