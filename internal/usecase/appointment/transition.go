package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/audit"
	domain "github.com/ciadabeleza/salon-scheduler/internal/domain/appointment"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
	"github.com/ciadabeleza/salon-scheduler/internal/timezone"
)

// ======================================================
// STATUS TRANSITIONS
// ======================================================
//
// Aceitar, iniciar, finalizar e cancelar têm a mesma forma: ler o registro,
// validar a transição contra o estado lido e gravar o novo status por ID.
// A escrita não reconfere o estado no banco (last write wins).

type transitionSpec struct {
	apply  func(*models.Appointment, time.Time) error
	action string
}

type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
	spec  transitionSpec
}

func newTransition(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
	spec transitionSpec,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
		spec:  spec,
	}
}

func NewAcceptAppointment(repo domain.Repository, audit *audit.Dispatcher, tz string) *TransitionAppointment {
	return newTransition(repo, audit, tz, transitionSpec{
		apply:  domain.Accept,
		action: "appointment_accepted",
	})
}

func NewStartAppointment(repo domain.Repository, audit *audit.Dispatcher, tz string) *TransitionAppointment {
	return newTransition(repo, audit, tz, transitionSpec{
		apply:  domain.Start,
		action: "appointment_started",
	})
}

func NewFinishAppointment(repo domain.Repository, audit *audit.Dispatcher, tz string) *TransitionAppointment {
	return newTransition(repo, audit, tz, transitionSpec{
		apply:  domain.Finish,
		action: "appointment_finished",
	})
}

func NewCancelAppointment(repo domain.Repository, audit *audit.Dispatcher, tz string) *TransitionAppointment {
	return newTransition(repo, audit, tz, transitionSpec{
		apply:  domain.Cancel,
		action: "appointment_cancelled",
	})
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	userID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	now := timezone.NowIn(uc.tz)
	if err := uc.spec.apply(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.SetStatus(ctx, ap.ID, domain.Status(ap.Status), now); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   uc.spec.action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
