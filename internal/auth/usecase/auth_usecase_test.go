package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "explorehub-backend/internal/auth/domain"
	authdto "explorehub-backend/internal/auth/dto"
	"explorehub-backend/internal/auth/repository"
	"explorehub-backend/pkg/metrics"
	"explorehub-backend/pkg/password"
	"explorehub-backend/pkg/token"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	uc      AuthUsecase
	repo    repository.UserRepository
	tokens  *token.Service
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := token.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	repo := repository.NewMemoryUserRepository()
	m := metrics.New()
	uc := NewAuthUsecase(repo, password.NewBcryptHasher(bcrypt.MinCost), tokens,
		WithMetrics(m),
		WithStoreTimeout(time.Second),
	)
	return &fixture{uc: uc, repo: repo, tokens: tokens, metrics: m}
}

func validRequest() *authdto.RegisterRequest {
	return &authdto.RegisterRequest{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Username:  "ada",
		Email:     "a@b.com",
		Mobile:    "0123456789",
		Country:   "UK",
		Password:  "secret1",
	}
}

func TestRegister_ThenFindByEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.uc.Register(ctx, validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, view.ID)
	assert.Equal(t, "a@b.com", view.Email)

	user, err := f.uc.FindUser(ctx, authdomain.Identifier{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, view.ID, user.ID)
	assert.Equal(t, "Ada", user.Firstname)
	assert.Equal(t, "Lovelace", user.Lastname)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "0123456789", user.Mobile)
	assert.Equal(t, "UK", user.Country)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuthAttempts.WithLabelValues("register", metrics.OutcomeSuccess)))
}

func TestRegister_NormalizesEmail(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Email = "  A@B.com "

	view, err := f.uc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", view.Email)
}

func TestRegister_TrimsFieldsBeforeStoring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := &authdto.RegisterRequest{
		Firstname: " Ada ",
		Lastname:  " Lovelace",
		Username:  "  ada ",
		Email:     " Ada@B.com",
		Mobile:    " 0123456789 ",
		Country:   "UK ",
		Password:  "secret1",
	}

	view, err := f.uc.Register(ctx, req)
	require.NoError(t, err)

	user, err := f.uc.FindUser(ctx, authdomain.Identifier{Username: "ada"})
	require.NoError(t, err)
	assert.Equal(t, view.ID, user.ID)
	assert.Equal(t, "Ada", user.Firstname)
	assert.Equal(t, "Lovelace", user.Lastname)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "0123456789", user.Mobile)
	assert.Equal(t, "UK", user.Country)
}

func TestRegister_WhitespaceOnlyFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *authdto.RegisterRequest)
		field  string
	}{
		{"firstname", func(r *authdto.RegisterRequest) { r.Firstname = "   " }, "firstname"},
		{"lastname", func(r *authdto.RegisterRequest) { r.Lastname = "\t " }, "lastname"},
		{"username", func(r *authdto.RegisterRequest) { r.Username = "  " }, "username"},
		{"country", func(r *authdto.RegisterRequest) { r.Country = " " }, "country"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tc.mutate(req)

			_, err := f.uc.Register(context.Background(), req)
			require.ErrorIs(t, err, authdomain.ErrValidation)

			var ve *authdomain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "is required", ve.Fields[tc.field])

			_, err = f.uc.FindUser(context.Background(), authdomain.Identifier{Email: "a@b.com"})
			assert.ErrorIs(t, err, authdomain.ErrNotFound)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Register(ctx, validRequest())
	require.NoError(t, err)

	again := validRequest()
	again.Username = "someone-else"
	again.Email = "A@B.COM"
	_, err = f.uc.Register(ctx, again)
	assert.ErrorIs(t, err, authdomain.ErrDuplicateEmail)

	user, err := f.uc.FindUser(ctx, authdomain.Identifier{ID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuthAttempts.WithLabelValues("register", metrics.OutcomeDuplicate)))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, validRequest())
	require.NoError(t, err)

	again := validRequest()
	again.Email = "other@b.com"
	_, err = f.uc.Register(ctx, again)
	assert.ErrorIs(t, err, authdomain.ErrDuplicateUsername)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Mobile = "123"
	req.Password = "123"

	_, err := f.uc.Register(context.Background(), req)
	require.ErrorIs(t, err, authdomain.ErrValidation)

	var ve *authdomain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "mobile")
	assert.Contains(t, ve.Fields, "password")
}

func TestFindUser_Identifier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view, err := f.uc.Register(ctx, validRequest())
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      authdomain.Identifier
		wantErr error
	}{
		{"by id", authdomain.Identifier{ID: view.ID}, nil},
		{"by email", authdomain.Identifier{Email: "a@b.com"}, nil},
		{"by username", authdomain.Identifier{Username: "ada"}, nil},
		{"ambiguous", authdomain.Identifier{Email: "a@b.com", Username: "ada"}, authdomain.ErrAmbiguousIdentifier},
		{"empty", authdomain.Identifier{}, authdomain.ErrValidation},
		{"missing", authdomain.Identifier{Username: "ghost"}, authdomain.ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user, err := f.uc.FindUser(ctx, tc.id)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view.ID, user.ID)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view, err := f.uc.Register(ctx, validRequest())
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		resp, err := f.uc.Login(ctx, authdomain.ParseLoginIdentifier("a@b.com"), "secret1")
		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, view.ID, resp.User.ID)

		claims, err := f.tokens.Verify(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, view.ID, claims.UserID)
		assert.Equal(t, "a@b.com", claims.UserEmail)
	})

	t.Run("by username", func(t *testing.T) {
		resp, err := f.uc.Login(ctx, authdomain.ParseLoginIdentifier("ada"), "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, wrongPassword := f.uc.Login(ctx, authdomain.ParseLoginIdentifier("ada"), "secret1x")
		_, unknownUser := f.uc.Login(ctx, authdomain.ParseLoginIdentifier("nobody@b.com"), "secret1")

		require.Error(t, wrongPassword)
		require.Error(t, unknownUser)
		assert.Equal(t, authdomain.ErrUnauthorized, wrongPassword)
		assert.Equal(t, authdomain.ErrUnauthorized, unknownUser)
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	})

	t.Run("ambiguous identifier is unauthorized", func(t *testing.T) {
		_, err := f.uc.Login(ctx, authdomain.Identifier{Email: "a@b.com", Username: "ada"}, "secret1")
		assert.Equal(t, authdomain.ErrUnauthorized, err)
	})
}

type countingHasher struct {
	password.Hasher
	hashes   int
	verifies int
}

func (h *countingHasher) Hash(plaintext string) (string, error) {
	h.hashes++
	return h.Hasher.Hash(plaintext)
}

func (h *countingHasher) Verify(storedHash, candidate string) bool {
	h.verifies++
	return h.Hasher.Verify(storedHash, candidate)
}

func TestLogin_UnknownUserStillVerifiesAHash(t *testing.T) {
	tokens, err := token.NewService("test-secret", time.Hour)
	require.NoError(t, err)
	hasher := &countingHasher{Hasher: password.NewBcryptHasher(bcrypt.MinCost)}
	uc := NewAuthUsecase(repository.NewMemoryUserRepository(), hasher, tokens)
	ctx := context.Background()

	_, err = uc.Login(ctx, authdomain.ParseLoginIdentifier("ghost@b.com"), "secret1")
	assert.Equal(t, authdomain.ErrUnauthorized, err)
	assert.Equal(t, 1, hasher.verifies)
	assert.Equal(t, 1, hasher.hashes)

	_, err = uc.Login(ctx, authdomain.ParseLoginIdentifier("ghost"), "secret1")
	assert.Equal(t, authdomain.ErrUnauthorized, err)
	assert.Equal(t, 2, hasher.verifies)
	assert.Equal(t, 1, hasher.hashes, "decoy hash is computed once")
}

type failingRepo struct {
	repository.UserRepository
}

func (failingRepo) FindByEmail(context.Context, string) (*authdomain.User, error) {
	return nil, errors.New("connection reset")
}

func TestLogin_StoreFailureIsNotUnauthorized(t *testing.T) {
	tokens, err := token.NewService("test-secret", time.Hour)
	require.NoError(t, err)
	uc := NewAuthUsecase(failingRepo{}, password.NewBcryptHasher(bcrypt.MinCost), tokens)

	_, err = uc.Login(context.Background(), authdomain.Identifier{Email: "a@b.com"}, "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, authdomain.ErrUnauthorized)
	assert.NotContains(t, err.Error(), "a@b.com")
}

func TestValidateToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view, err := f.uc.Register(ctx, validRequest())
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		tok, _, err := f.tokens.Issue(view.ID, view.Email)
		require.NoError(t, err)

		user, err := f.uc.ValidateToken(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, view.ID, user.ID)
	})

	t.Run("expired", func(t *testing.T) {
		past, err := token.NewService("test-secret", time.Minute, token.WithClock(func() time.Time {
			return time.Now().Add(-time.Hour)
		}))
		require.NoError(t, err)
		tok, _, err := past.Issue(view.ID, view.Email)
		require.NoError(t, err)

		_, err = f.uc.ValidateToken(ctx, tok)
		assert.Equal(t, authdomain.ErrUnauthenticated, err)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other, err := token.NewService("another-secret", time.Hour)
		require.NoError(t, err)
		tok, _, err := other.Issue(view.ID, view.Email)
		require.NoError(t, err)

		_, err = f.uc.ValidateToken(ctx, tok)
		assert.Equal(t, authdomain.ErrUnauthenticated, err)
	})

	t.Run("deleted user", func(t *testing.T) {
		tok, _, err := f.tokens.Issue("no-such-user", "gone@b.com")
		require.NoError(t, err)

		_, err = f.uc.ValidateToken(ctx, tok)
		assert.Equal(t, authdomain.ErrUnauthenticated, err)
	})

	t.Run("empty and garbage", func(t *testing.T) {
		_, err := f.uc.ValidateToken(ctx, "")
		assert.Equal(t, authdomain.ErrUnauthenticated, err)

		_, err = f.uc.ValidateToken(ctx, "not.a.jwt")
		assert.Equal(t, authdomain.ErrUnauthenticated, err)
	})
}
