package usecase

import (
	"context"
	"log/slog"
	"time"

	tripdomain "explorehub-backend/internal/trip/domain"
	tripdto "explorehub-backend/internal/trip/dto"
	"explorehub-backend/internal/trip/repository"
	"explorehub-backend/pkg/logger"
)

// tripUsecase implements TripUsecase interface
type tripUsecase struct {
	repo      repository.FavoriteFlightRepository
	log       *slog.Logger
	dbTimeout time.Duration
}

// NewTripUsecase creates a new instance of tripUsecase. A nil logger
// discards output; a zero timeout leaves store calls unbounded.
func NewTripUsecase(repo repository.FavoriteFlightRepository, log *slog.Logger, dbTimeout time.Duration) TripUsecase {
	if log == nil {
		log = logger.Discard()
	}
	return &tripUsecase{
		repo:      repo,
		log:       log,
		dbTimeout: dbTimeout,
	}
}

func (u *tripUsecase) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.dbTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.dbTimeout)
}

func (u *tripUsecase) SaveFavoriteFlights(ctx context.Context, userID string, inputs []tripdto.FavoriteFlightInput) ([]*tripdomain.FavoriteFlight, error) {
	if err := tripdto.ValidateInputs(inputs); err != nil {
		return nil, err
	}

	saved := make([]*tripdomain.FavoriteFlight, 0, len(inputs))
	for _, in := range inputs {
		flight := &tripdomain.FavoriteFlight{
			UserID:       userID,
			Outbound:     in.Outbound,
			ReturnFlight: in.ReturnFlight,
			TotalPrice:   *in.TotalPrice,
		}

		sctx, cancel := u.storeCtx(ctx)
		err := u.repo.Create(sctx, flight)
		cancel()
		if err != nil {
			u.log.ErrorContext(ctx, "saving favorite flight failed", "user_id", userID, "saved", len(saved), "error", err)
			return nil, err
		}
		saved = append(saved, flight)
	}

	u.log.InfoContext(ctx, "favorite flights saved", "user_id", userID, "count", len(saved))
	return saved, nil
}

func (u *tripUsecase) ListFavoriteFlights(ctx context.Context, userID string) ([]*tripdomain.FavoriteFlight, error) {
	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	return u.repo.FindByUserID(sctx, userID)
}

func (u *tripUsecase) DeleteFavoriteFlight(ctx context.Context, userID, id string) error {
	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	if err := u.repo.Delete(sctx, userID, id); err != nil {
		return err
	}
	u.log.InfoContext(ctx, "favorite flight deleted", "user_id", userID, "flight_id", id)
	return nil
}
