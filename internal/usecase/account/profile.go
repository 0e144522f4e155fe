package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/validators"
)

type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

type Profile struct {
	repo domain.UserRepository
}

func NewProfile(repo domain.UserRepository) *Profile {
	return &Profile{repo: repo}
}

func (uc *Profile) Get(ctx context.Context, principal domain.Principal) (*models.User, error) {
	u, err := uc.repo.GetUser(ctx, principal.UserID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	if u.IsDeleted {
		return nil, httperr.ErrNotFound(httperr.CodeUserNotFound)
	}
	return u, nil
}

// Update patches the caller's profile. An empty phone clears it.
func (uc *Profile) Update(ctx context.Context, principal domain.Principal, in UpdateProfileInput) (*models.User, error) {
	u, err := uc.Get(ctx, principal)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = validators.NormalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		u.Phone = validators.NormalizePhone(*in.Phone)
	}
	if u.Name == "" || !strings.Contains(u.Email, "@") {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	if in.Password != nil {
		if len(*in.Password) < MinPasswordLength {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hashed)
	}

	if err := checkIdentity(ctx, uc.repo, u, u.ID); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrDuplicate(httperr.CodeEmailTaken)
		}
		return nil, err
	}
	return u, nil
}
