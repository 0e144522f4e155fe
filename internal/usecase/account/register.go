package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	"github.com/BruksfildServices01/service-booking/internal/auth"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/validators"
)

const MinPasswordLength = 6

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type Register struct {
	repo   domain.UserRepository
	tokens *auth.Tokens
	audit  *audit.Dispatcher

	// Optional; nil skips the DNS check.
	CheckEmailDomain validators.DomainCheck
}

func NewRegister(repo domain.UserRepository, tokens *auth.Tokens, audit *audit.Dispatcher) *Register {
	return &Register{repo: repo, tokens: tokens, audit: audit}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	u := &models.User{
		Name:   strings.TrimSpace(in.Name),
		Email:  validators.NormalizeEmail(in.Email),
		Phone:  validators.NormalizePhone(in.Phone),
		Role:   models.RoleUser,
		Status: models.UserStatusActive,
	}

	if u.Name == "" || !strings.Contains(u.Email, "@") || len(in.Password) < MinPasswordLength {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	if uc.CheckEmailDomain != nil && !uc.CheckEmailDomain(u.Email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmailDomain)
	}

	if err := checkIdentity(ctx, uc.repo, u, 0); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hashed)

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrDuplicate(httperr.CodeEmailTaken)
		}
		return nil, err
	}

	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(u.ID),
		Action:   "user_registered",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	})

	return &Session{User: u, Token: token}, nil
}

type identityCheck struct {
	field string
	value string
	code  string
}

// checkIdentity rejects an email, name or phone held by another account.
// Soft-deleted accounts keep theirs.
func checkIdentity(ctx context.Context, repo domain.UserRepository, u *models.User, excludeID uint) error {
	checks := []identityCheck{
		{domain.IdentityEmail, u.Email, httperr.CodeEmailTaken},
		{domain.IdentityName, u.Name, httperr.CodeNameTaken},
	}
	if u.Phone != nil {
		checks = append(checks, identityCheck{domain.IdentityPhone, *u.Phone, httperr.CodePhoneTaken})
	}

	for _, c := range checks {
		taken, err := repo.IdentityTaken(ctx, c.field, c.value, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrDuplicate(c.code)
		}
	}
	return nil
}
