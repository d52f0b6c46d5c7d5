package appointment

import (
	"context"

	domain "github.com/ciadabeleza/salon-scheduler/internal/domain/appointment"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
	"github.com/ciadabeleza/salon-scheduler/internal/timezone"
)

// ======================================================
// UPCOMING LIST (visão do profissional)
// ======================================================

type UpcomingList struct {
	Records []domain.Record `json:"records"`
	Summary domain.Summary  `json:"summary"`
}

type ListUpcoming struct {
	repo domain.Repository
	tz   string
}

func NewListUpcoming(repo domain.Repository, tz string) *ListUpcoming {
	return &ListUpcoming{repo: repo, tz: tz}
}

// ByProfessionalName resolve a visão que casa pelo nome desnormalizado:
// classifica, filtra para >= hoje, ordena e agrega em uma passada.
func (uc *ListUpcoming) ByProfessionalName(
	ctx context.Context,
	name string,
) (*UpcomingList, error) {

	raw, err := uc.repo.ListByProfessionalName(ctx, name)
	if err != nil {
		return nil, err
	}
	return uc.assemble(raw), nil
}

// ByProfessionalID resolve a visão que casa pelo identificador, restrita aos
// status ativos.
func (uc *ListUpcoming) ByProfessionalID(
	ctx context.Context,
	professionalID string,
) (*UpcomingList, error) {

	raw, err := uc.repo.ListByProfessionalID(ctx, professionalID, []string{
		string(domain.StatusScheduled),
		string(domain.StatusPending),
		string(domain.StatusConfirmed),
		string(domain.StatusInProgress),
	})
	if err != nil {
		return nil, err
	}
	return uc.assemble(raw), nil
}

func (uc *ListUpcoming) assemble(raw []models.Appointment) *UpcomingList {
	loc := timezone.Location(uc.tz)
	now := timezone.NowIn(uc.tz)

	sorted := domain.Upcoming(domain.ClassifyAll(raw, loc), now)
	return &UpcomingList{
		Records: sorted,
		Summary: domain.Summarize(sorted, now),
	}
}
