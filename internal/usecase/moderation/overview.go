package moderation

import (
	"context"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/dto"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

type OverviewStats struct {
	TotalUsers    int `json:"total_users"`
	TotalServices int `json:"total_services"`
	TotalReviews  int `json:"total_reviews"`
}

type Overview struct {
	Users    []dto.ProfileDTO     `json:"users"`
	Services []dto.ServiceListDTO `json:"services"`
	Reviews  []dto.ReviewDTO      `json:"reviews"`
	Stats    OverviewStats        `json:"stats"`
}

// AdminOverview is the admin dashboard: every non-admin account with the
// services and reviews that belong to them.
type AdminOverview struct {
	repo domain.Repository
}

func NewAdminOverview(repo domain.Repository) *AdminOverview {
	return &AdminOverview{repo: repo}
}

func (uc *AdminOverview) Execute(ctx context.Context, principal domain.Principal) (*Overview, error) {
	if !principal.IsAdmin() {
		return nil, httperr.ErrForbidden(httperr.CodeAdminRequired)
	}

	users, err := uc.repo.ListUsers(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	services, err := uc.repo.ListServices(ctx, domain.ServiceFilter{
		IncludeDeleted:    true,
		ExcludeAdminOwned: true,
	})
	if err != nil {
		return nil, err
	}

	all, err := uc.repo.ListReviews(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}
	stats, err := uc.repo.RatingStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	visibleUser := make(map[uint]bool, len(users))
	for _, u := range users {
		visibleUser[u.ID] = true
	}
	visibleService := make(map[uint]bool, len(services))
	for _, s := range services {
		visibleService[s.ID] = true
	}

	reviews := make([]models.Review, 0, len(all))
	for _, r := range all {
		if visibleUser[r.ClientID] && visibleService[r.ServiceID] {
			reviews = append(reviews, r)
		}
	}

	return &Overview{
		Users:    dto.Profiles(users),
		Services: dto.ServiceList(services, stats),
		Reviews:  dto.Reviews(reviews),
		Stats: OverviewStats{
			TotalUsers:    len(users),
			TotalServices: len(services),
			TotalReviews:  len(reviews),
		},
	}, nil
}
