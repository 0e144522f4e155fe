package review

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

const (
	MinRating = 0
	MaxRating = 5
)

type CreateReviewInput struct {
	BookingID uint
	Rating    int
	Comment   string
}

// CreateReview lets the client of a booking rate it once. Rating a booking
// also hides it from the client's list.
type CreateReview struct {
	repo   domain.Repository
	purger *ucBooking.Purger
	audit  *audit.Dispatcher
}

func NewCreateReview(repo domain.Repository, purger *ucBooking.Purger, audit *audit.Dispatcher) *CreateReview {
	return &CreateReview{repo: repo, purger: purger, audit: audit}
}

func (uc *CreateReview) Execute(
	ctx context.Context,
	principal domain.Principal,
	in CreateReviewInput,
) (*models.Review, error) {

	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRating)
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeBookingNotFound)
	}
	if err != nil {
		return nil, err
	}

	if b.ClientID != principal.UserID {
		return nil, httperr.ErrForbidden(httperr.CodeNotBookingParty)
	}
	if b.IsReviewed {
		return nil, httperr.ErrDuplicate(httperr.CodeAlreadyReviewed)
	}
	if domain.Status(b.Status) == domain.StatusCancelled {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	r := &models.Review{
		ServiceID: b.ServiceID,
		ClientID:  principal.UserID,
		BookingID: b.ID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	}
	if err := uc.repo.CreateReview(ctx, r); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrDuplicate(httperr.CodeAlreadyReviewed)
		}
		return nil, err
	}

	updated, err := uc.repo.MarkReviewed(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if domain.VisibilityOf(updated) == domain.Purged {
		if _, _, err := uc.purger.Converge(ctx, b.ServiceID); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "review_created",
		Entity:   "review",
		EntityID: audit.Ptr(r.ID),
		Metadata: map[string]any{"booking_id": b.ID, "rating": r.Rating},
	})

	return r, nil
}

type ListReviews struct {
	services domain.ServiceRepository
	reviews  domain.ReviewRepository
}

func NewListReviews(services domain.ServiceRepository, reviews domain.ReviewRepository) *ListReviews {
	return &ListReviews{services: services, reviews: reviews}
}

// ForService returns the reviews of a live service, newest first.
func (uc *ListReviews) ForService(ctx context.Context, serviceID uint) ([]models.Review, error) {
	svc, err := uc.services.GetService(ctx, serviceID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
	}
	if err != nil {
		return nil, err
	}
	if svc.IsDeleted {
		return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
	}
	return uc.reviews.ListReviewsForService(ctx, serviceID)
}
