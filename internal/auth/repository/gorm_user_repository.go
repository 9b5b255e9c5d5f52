package repository

import (
	"context"
	"errors"
	"time"

	authdomain "explorehub-backend/internal/auth/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
	"gorm.io/gorm"
)

type userRecord struct {
	ID           string `gorm:"primaryKey"`
	Firstname    string `gorm:"not null"`
	Lastname     string `gorm:"not null"`
	Username     string `gorm:"not null;uniqueIndex:idx_users_username"`
	Email        string `gorm:"not null;uniqueIndex:idx_users_email"`
	Mobile       string
	Country      string
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *authdomain.User {
	return &authdomain.User{
		ID:           r.ID,
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		Username:     r.Username,
		Email:        r.Email,
		Mobile:       r.Mobile,
		Country:      r.Country,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// gormUserRepository implements UserRepository on PostgreSQL via GORM
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new instance of gormUserRepository
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{
		db: db,
	}
}

func (r *gormUserRepository) Create(ctx context.Context, user *authdomain.User) error {
	rec := &userRecord{
		ID:           uuid.New().String(),
		Firstname:    user.Firstname,
		Lastname:     user.Lastname,
		Username:     user.Username,
		Email:        user.Email,
		Mobile:       user.Mobile,
		Country:      user.Country,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if pgErr.ConstraintName == "idx_users_username" {
				return authdomain.ErrDuplicateUsername
			}
			return authdomain.ErrDuplicateEmail
		}
		return oops.In("user_repository").Code("USER_INSERT_FAILED").Wrap(err)
	}

	user.ID = rec.ID
	user.CreatedAt = rec.CreatedAt
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*authdomain.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg string) (*authdomain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authdomain.ErrNotFound
		}
		return nil, oops.In("user_repository").Code("USER_LOOKUP_FAILED").Wrap(err)
	}
	return rec.toDomain(), nil
}

func (r *gormUserRepository) EnsureIndexes(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&userRecord{}); err != nil {
		return oops.In("user_repository").Code("USER_MIGRATE_FAILED").Wrap(err)
	}
	return nil
}
