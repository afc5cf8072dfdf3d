package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/taskflow/internal/auth"
	"github.com/spec-kit/taskflow/internal/config"
	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	account.ID = fmt.Sprintf("acct-%d", r.seq)
	clone := *account
	r.accounts[account.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *account
	r.accounts[account.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *account
	return &clone, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeResetRepo struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = fmt.Sprintf("reset-%d", r.seq)
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *token
	return &clone, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeAccountRepo, *fakeResetRepo) {
	t.Helper()
	accounts := newFakeAccountRepo()
	resets := newFakeResetRepo()
	svc := NewAuthService(AuthDependencies{
		AccountRepo: accounts,
		ResetRepo:   resets,
		Tokens:      auth.NewTokenManager("test-secret", 60),
		Config: config.AuthConfig{
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
		},
		Logger: testLogger(),
	})
	return svc, accounts, resets
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	account, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret", domain.AccountRoleManager)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountRoleManager, account.Role)
	assert.True(t, account.Active)
	assert.NotEqual(t, "supersecret", account.PasswordHash)

	result, err := svc.Login(context.Background(), "Ada@Example.com ", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, account.ID, result.Account.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other", "ada@example.com", "supersecret", "")
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "CONFLICT", derr.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "short", "")
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "VALIDATION_FAILED", derr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ada@example.com", "wrong")
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, accounts, _ := newAuthFixture(t)
	account, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret", "")
	require.NoError(t, err)

	account.Active = false
	require.NoError(t, accounts.Update(context.Background(), account))

	_, err = svc.Login(context.Background(), "ada@example.com", "supersecret")
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret", "")
	require.NoError(t, err)

	tokenStr, err := svc.RequestPasswordReset(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	require.NoError(t, svc.ResetPassword(context.Background(), tokenStr, "newpassword"))

	_, err = svc.Login(context.Background(), "ada@example.com", "newpassword")
	require.NoError(t, err)

	// A consumed token cannot be reused.
	err = svc.ResetPassword(context.Background(), tokenStr, "anotherpassword")
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestPasswordResetUnknownEmailSilent(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	tokenStr, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, tokenStr)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	svc, _, resets := newAuthFixture(t)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret", "")
	require.NoError(t, err)

	tokenStr, err := svc.RequestPasswordReset(context.Background(), "ada@example.com")
	require.NoError(t, err)

	resets.mu.Lock()
	resets.tokens[tokenStr].ExpiresAt = time.Now().Add(-time.Minute)
	resets.mu.Unlock()

	err = svc.ResetPassword(context.Background(), tokenStr, "newpassword")
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	account, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret", "")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), account.ID, "supersecret", "newpassword"))

	err = svc.ChangePassword(context.Background(), account.ID, "supersecret", "thirdpassword")
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}
