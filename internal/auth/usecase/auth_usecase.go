package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	authdomain "explorehub-backend/internal/auth/domain"
	authdto "explorehub-backend/internal/auth/dto"
	"explorehub-backend/internal/auth/repository"
	"explorehub-backend/pkg/logger"
	"explorehub-backend/pkg/metrics"
	"explorehub-backend/pkg/password"

	"github.com/samber/oops"
)

const (
	tokenTypeBearer = "bearer"

	// decoyPassword is verified against when a login identifier matches no user.
	decoyPassword = "decoy-password-never-issued"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo  repository.UserRepository
	hasher    password.Hasher
	tokens    TokenService
	log       *slog.Logger
	metrics   *metrics.Metrics
	dbTimeout time.Duration

	decoyOnce sync.Once
	decoyHash string
}

type Option func(*authUsecase)

func WithLogger(l *slog.Logger) Option {
	return func(u *authUsecase) {
		if l != nil {
			u.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(u *authUsecase) {
		u.metrics = m
	}
}

// WithStoreTimeout bounds every repository call. Zero disables the bound.
func WithStoreTimeout(d time.Duration) Option {
	return func(u *authUsecase) {
		u.dbTimeout = d
	}
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, hasher password.Hasher, tokens TokenService, opts ...Option) AuthUsecase {
	u := &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *authUsecase) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.dbTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.dbTimeout)
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.UserView, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		u.metrics.RecordAuth("register", metrics.OutcomeInvalid)
		return nil, err
	}

	if _, err := u.lookup(ctx, authdomain.Identifier{Email: req.Email}); err == nil {
		u.metrics.RecordAuth("register", metrics.OutcomeDuplicate)
		return nil, authdomain.ErrDuplicateEmail
	} else if !errors.Is(err, authdomain.ErrNotFound) {
		u.metrics.RecordAuth("register", metrics.OutcomeError)
		return nil, err
	}

	if _, err := u.lookup(ctx, authdomain.Identifier{Username: req.Username}); err == nil {
		u.metrics.RecordAuth("register", metrics.OutcomeDuplicate)
		return nil, authdomain.ErrDuplicateUsername
	} else if !errors.Is(err, authdomain.ErrNotFound) {
		u.metrics.RecordAuth("register", metrics.OutcomeError)
		return nil, err
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		if password.IsValidationError(err) {
			u.metrics.RecordAuth("register", metrics.OutcomeInvalid)
			return nil, authdomain.NewValidationError(map[string]string{"password": err.Error()})
		}
		u.metrics.RecordAuth("register", metrics.OutcomeError)
		return nil, oops.In("auth_usecase").Code("REGISTER_HASH_FAILED").Wrap(err)
	}

	user := &authdomain.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Username:     req.Username,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Country:      req.Country,
		PasswordHash: hash,
	}

	sctx, cancel := u.storeCtx(ctx)
	defer cancel()
	if err := u.userRepo.Create(sctx, user); err != nil {
		if errors.Is(err, authdomain.ErrDuplicateEmail) || errors.Is(err, authdomain.ErrDuplicateUsername) {
			u.metrics.RecordAuth("register", metrics.OutcomeDuplicate)
			return nil, err
		}
		u.metrics.RecordAuth("register", metrics.OutcomeError)
		return nil, oops.In("auth_usecase").Code("REGISTER_FAILED").Wrap(err)
	}

	u.metrics.RecordAuth("register", metrics.OutcomeSuccess)
	u.log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user.View(), nil
}

func (u *authUsecase) FindUser(ctx context.Context, id authdomain.Identifier) (*authdomain.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return u.lookup(ctx, id)
}

// lookup dispatches a validated identifier to the matching repository call.
func (u *authUsecase) lookup(ctx context.Context, id authdomain.Identifier) (*authdomain.User, error) {
	sctx, cancel := u.storeCtx(ctx)
	defer cancel()

	switch {
	case id.ID != "":
		return u.userRepo.FindByID(sctx, id.ID)
	case id.Email != "":
		return u.userRepo.FindByEmail(sctx, authdomain.NormalizeEmail(id.Email))
	default:
		return u.userRepo.FindByUsername(sctx, id.Username)
	}
}

func (u *authUsecase) Login(ctx context.Context, id authdomain.Identifier, plaintext string) (*authdto.LoginResponse, error) {
	if err := id.Validate(); err != nil {
		u.metrics.RecordAuth("login", metrics.OutcomeRejected)
		return nil, authdomain.ErrUnauthorized
	}

	user, err := u.lookup(ctx, id)
	if err != nil {
		if errors.Is(err, authdomain.ErrNotFound) {
			u.hasher.Verify(u.decoy(), plaintext)
			u.log.DebugContext(ctx, "login rejected", "reason", "unknown identifier")
			u.metrics.RecordAuth("login", metrics.OutcomeRejected)
			return nil, authdomain.ErrUnauthorized
		}
		u.log.ErrorContext(ctx, "login lookup failed", "error", err)
		u.metrics.RecordAuth("login", metrics.OutcomeError)
		return nil, oops.In("auth_usecase").Code("LOGIN_LOOKUP_FAILED").Wrap(err)
	}

	if !u.hasher.Verify(user.PasswordHash, plaintext) {
		u.log.DebugContext(ctx, "login rejected", "reason", "password mismatch", "user_id", user.ID)
		u.metrics.RecordAuth("login", metrics.OutcomeRejected)
		return nil, authdomain.ErrUnauthorized
	}

	accessToken, _, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		u.metrics.RecordAuth("login", metrics.OutcomeError)
		return nil, oops.In("auth_usecase").Code("TOKEN_ISSUE_FAILED").With("user_id", user.ID).Wrap(err)
	}

	u.metrics.RecordAuth("login", metrics.OutcomeSuccess)
	u.log.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return &authdto.LoginResponse{
		User:        user.View(),
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
	}, nil
}

// decoy returns a hash to verify against when the identifier matched no
// user. It is computed on first use with the configured hasher's cost.
func (u *authUsecase) decoy() string {
	u.decoyOnce.Do(func() {
		hash, err := u.hasher.Hash(decoyPassword)
		if err != nil {
			u.log.Error("decoy hash failed", "error", err)
			return
		}
		u.decoyHash = hash
	})
	return u.decoyHash
}

func (u *authUsecase) ValidateToken(ctx context.Context, accessToken string) (*authdomain.User, error) {
	if accessToken == "" {
		u.metrics.RecordAuth("validate", metrics.OutcomeRejected)
		return nil, authdomain.ErrUnauthenticated
	}

	claims, err := u.tokens.Verify(accessToken)
	if err != nil {
		u.log.WarnContext(ctx, "token rejected", "reason", err.Error())
		u.metrics.RecordAuth("validate", metrics.OutcomeRejected)
		return nil, authdomain.ErrUnauthenticated
	}

	user, err := u.lookup(ctx, authdomain.Identifier{ID: claims.UserID})
	if err != nil {
		u.log.WarnContext(ctx, "token subject unresolved", "user_id", claims.UserID, "error", err)
		u.metrics.RecordAuth("validate", metrics.OutcomeRejected)
		return nil, authdomain.ErrUnauthenticated
	}

	u.metrics.RecordAuth("validate", metrics.OutcomeSuccess)
	return user, nil
}
