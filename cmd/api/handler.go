package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	authDelivery "explorehub-backend/internal/auth/delivery"
	authUsecase "explorehub-backend/internal/auth/usecase"
	tripDelivery "explorehub-backend/internal/trip/delivery"
	tripUsecase "explorehub-backend/internal/trip/usecase"
	"explorehub-backend/pkg/logger"
	"explorehub-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"
)

const shutdownTimeout = 10 * time.Second

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	authHandler *authDelivery.AuthHandler
	tripHandler *tripDelivery.TripHandler
	metrics     *metrics.Metrics
	log         *slog.Logger
}

func NewHandler(authUc authUsecase.AuthUsecase, tripUc tripUsecase.TripUsecase, m *metrics.Metrics, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		authUsecase: authUc,
		authHandler: authDelivery.NewAuthHandler(authUc),
		tripHandler: tripDelivery.NewTripHandler(tripUc),
		metrics:     m,
		log:         log,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(
		RequestID(),
		Recovery(h.log),
		AccessLog(h.log),
		Metrics(h.metrics),
	)

	SetupRoutes(r, h.authUsecase, h.authHandler, h.tripHandler, h.metrics)
	return r
}

// Start serves on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return oops.In("http_server").Code("LISTEN_FAILED").With("addr", addr).Wrap(err)
	case <-ctx.Done():
	}

	h.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return oops.In("http_server").Code("SHUTDOWN_FAILED").Wrap(err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return oops.In("http_server").Code("LISTEN_FAILED").With("addr", addr).Wrap(err)
	}
	return nil
}
