// Package server accepts "episode watched" events over HTTP and dispatches them to the sync.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/anisan-cli/bgmsync/constant"
	"github.com/anisan-cli/bgmsync/event"
	"github.com/anisan-cli/bgmsync/integration"
	"github.com/anisan-cli/bgmsync/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HeaderRequestID carries the id assigned to each request.
const HeaderRequestID = "X-Request-Id"

// maxBody bounds event payloads.
const maxBody = 1 << 20

// Dispatcher runs a sync for a decoded payload.
type Dispatcher interface {
	Dispatch(ctx context.Context, mode integration.Mode, payload []*event.Episode, ids ...string) (*integration.Outcome, integration.TrackingCatalog, error)
}

type ctxKey struct{}

type response struct {
	RequestID string               `json:"request_id"`
	Outcome   *integration.Outcome `json:"outcome,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// New returns the router serving POST /sync and GET /health.
//
// POST /sync takes an event payload, one episode object or an array of them, and runs it in the
// mode named by the "mode" query parameter, event by default.
func New(d Dispatcher) http.Handler {
	r := mux.NewRouter()
	r.Use(requestID)
	r.HandleFunc("/health", health).Methods(http.MethodGet)
	r.HandleFunc("/sync", syncHandler(d)).Methods(http.MethodPost)
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestID returns the id assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": constant.Version})
}

func syncHandler(d Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := RequestID(r.Context())
		logger := log.WithFields(log.Fields{"request_id": id})
		fail := func(status int, err error) {
			logger.WithField("status", status).Error(err)
			writeJSON(w, status, response{RequestID: id, Error: err.Error()})
		}

		mode := integration.ModeEvent
		if raw := r.URL.Query().Get("mode"); raw != "" {
			parsed, err := integration.ParseMode(raw)
			if err != nil {
				fail(http.StatusBadRequest, err)
				return
			}
			mode = parsed
		}

		payload, err := event.Decode(http.MaxBytesReader(w, r.Body, maxBody))
		if err != nil && !(errors.Is(err, event.ErrEmpty) && mode != integration.ModeEvent) {
			fail(http.StatusBadRequest, err)
			return
		}

		start := time.Now()
		outcome, _, err := d.Dispatch(r.Context(), mode, payload)
		logger = logger.WithField("elapsed", time.Since(start).String())

		switch {
		case errors.Is(err, integration.ErrNoInput), errors.Is(err, integration.ErrUnknownMode):
			fail(http.StatusBadRequest, err)
		case err != nil:
			logger.WithField("status", http.StatusBadGateway).Error(err)
			writeJSON(w, http.StatusBadGateway, response{RequestID: id, Outcome: outcome, Error: err.Error()})
		default:
			if outcome != nil {
				logger.WithField("synced", outcome.Synced()).Infof("sync %s", outcome)
			}
			writeJSON(w, http.StatusOK, response{RequestID: id, Outcome: outcome})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves h on addr until ctx is done, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
