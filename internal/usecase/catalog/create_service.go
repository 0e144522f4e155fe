package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

type CreateServiceInput struct {
	Title         string
	Description   string
	Location      string
	Duration      int
	Price         float64
	AvailableFrom string
	AvailableTo   string
}

type CreateService struct {
	repo  domain.ServiceRepository
	audit *audit.Dispatcher
}

func NewCreateService(repo domain.ServiceRepository, audit *audit.Dispatcher) *CreateService {
	return &CreateService{repo: repo, audit: audit}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	principal domain.Principal,
	in CreateServiceInput,
) (*models.Service, error) {

	svc := &models.Service{
		OwnerID:       principal.UserID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Location:      in.Location,
		Duration:      in.Duration,
		Price:         in.Price,
		AvailableFrom: in.AvailableFrom,
		AvailableTo:   in.AvailableTo,
	}
	svc.ApplyDefaults()

	if svc.Title == "" || in.Duration < 0 || svc.Price < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	if err := domain.ValidateWindow(svc.AvailableFrom, svc.AvailableTo); err != nil {
		return nil, err
	}

	taken, err := uc.repo.TitleTaken(ctx, svc.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrDuplicate(httperr.CodeTitleTaken)
	}

	if err := uc.repo.CreateService(ctx, svc); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrDuplicate(httperr.CodeTitleTaken)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "service_created",
		Entity:   "service",
		EntityID: audit.Ptr(svc.ID),
	})

	return svc, nil
}
