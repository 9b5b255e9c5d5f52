package repository

import (
	"context"
	"time"

	tripdomain "explorehub-backend/internal/trip/domain"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"gorm.io/gorm"
)

type favoriteFlightRecord struct {
	ID           string                   `gorm:"primaryKey"`
	UserID       string                   `gorm:"index;not null"`
	Outbound     tripdomain.FlightDetail  `gorm:"serializer:json;type:jsonb;not null"`
	ReturnFlight *tripdomain.FlightDetail `gorm:"serializer:json;type:jsonb"`
	TotalPrice   float64
	CreatedAt    time.Time
}

func (favoriteFlightRecord) TableName() string { return "favorite_flights" }

func (r *favoriteFlightRecord) toDomain() *tripdomain.FavoriteFlight {
	return &tripdomain.FavoriteFlight{
		ID:           r.ID,
		UserID:       r.UserID,
		Outbound:     r.Outbound,
		ReturnFlight: r.ReturnFlight,
		TotalPrice:   r.TotalPrice,
		CreatedAt:    r.CreatedAt,
	}
}

// gormFavoriteFlightRepository implements FavoriteFlightRepository using GORM
type gormFavoriteFlightRepository struct {
	db *gorm.DB
}

// NewGormFavoriteFlightRepository creates a new GORM-based FavoriteFlightRepository
func NewGormFavoriteFlightRepository(db *gorm.DB) FavoriteFlightRepository {
	return &gormFavoriteFlightRepository{db: db}
}

func (r *gormFavoriteFlightRepository) Create(ctx context.Context, flight *tripdomain.FavoriteFlight) error {
	rec := &favoriteFlightRecord{
		ID:           uuid.New().String(),
		UserID:       flight.UserID,
		Outbound:     flight.Outbound,
		ReturnFlight: flight.ReturnFlight,
		TotalPrice:   flight.TotalPrice,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return oops.In("trip_repository").Code("FAVORITE_INSERT_FAILED").With("user_id", flight.UserID).Wrap(err)
	}

	flight.ID = rec.ID
	flight.CreatedAt = rec.CreatedAt
	return nil
}

func (r *gormFavoriteFlightRepository) FindByUserID(ctx context.Context, userID string) ([]*tripdomain.FavoriteFlight, error) {
	var recs []favoriteFlightRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, oops.In("trip_repository").Code("FAVORITE_LIST_FAILED").With("user_id", userID).Wrap(err)
	}

	flights := make([]*tripdomain.FavoriteFlight, 0, len(recs))
	for i := range recs {
		flights = append(flights, recs[i].toDomain())
	}
	return flights, nil
}

func (r *gormFavoriteFlightRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&favoriteFlightRecord{})
	if res.Error != nil {
		return oops.In("trip_repository").Code("FAVORITE_DELETE_FAILED").With("user_id", userID).Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return tripdomain.ErrNotFound
	}
	return nil
}

func (r *gormFavoriteFlightRepository) EnsureIndexes(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&favoriteFlightRecord{}); err != nil {
		return oops.In("trip_repository").Code("FAVORITE_MIGRATE_FAILED").Wrap(err)
	}
	return nil
}
