package account

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/service-booking/internal/auth"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/validators"
)

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	repo   domain.UserRepository
	tokens *auth.Tokens
	log    *zap.Logger
}

func NewLogin(repo domain.UserRepository, tokens *auth.Tokens, log *zap.Logger) *Login {
	return &Login{repo: repo, tokens: tokens, log: log}
}

// Execute answers invalid_credentials for unknown, deleted and mismatched
// accounts alike.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*Session, error) {
	u, err := uc.repo.FindUserByEmail(ctx, validators.NormalizeEmail(in.Email))
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrUnauthorized(httperr.CodeInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if u.IsDeleted {
		return nil, httperr.ErrUnauthorized(httperr.CodeInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, httperr.ErrUnauthorized(httperr.CodeInvalidCredentials)
	}

	if u.Status == models.UserStatusSuspended {
		uc.log.Info("suspended login refused", zap.Uint("user_id", u.ID))
		return nil, httperr.ErrForbidden(httperr.CodeAccountSuspended)
	}

	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}
