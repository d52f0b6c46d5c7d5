package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/audit"
	domain "github.com/ciadabeleza/salon-scheduler/internal/domain/appointment"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
)

// DeleteAppointment é o caminho administrativo de remoção física, fora do
// ciclo de vida de status e sempre auditado.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	adminID string,
	appointmentID string,
) error {

	if _, err := uc.repo.GetAppointment(ctx, appointmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
