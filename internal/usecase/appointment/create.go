package appointment

import (
	"context"
	"time"

	"github.com/ciadabeleza/salon-scheduler/internal/audit"
	domain "github.com/ciadabeleza/salon-scheduler/internal/domain/appointment"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
	"github.com/ciadabeleza/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID      string
	ProfessionalID string

	Date  string
	Time  string
	Notes string

	// Quem criou (recepção) ou vazio no agendamento público.
	CreatedBy string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// Execute cria o agendamento pendente, congelando os nomes de cliente,
// serviço e profissional como cópias desnormalizadas. Não há checagem de
// conflito de horário: a agenda aceita sobreposição, como o sistema sempre
// aceitou.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	loc := timezone.Location(uc.tz)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	prof, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	if !prof.Active {
		return nil, httperr.ErrBusiness("professional_inactive")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	price := svc.Price
	ap := &models.Appointment{
		ClientName:       client.Name,
		ServiceName:      svc.Name,
		ProfessionalID:   prof.ID,
		ProfessionalName: prof.Name,
		ScheduledAt:      &start,
		Status:           string(domain.StatusPending),
		Price:            &price,
		Notes:            in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	var actor *string
	if in.CreatedBy != "" {
		actor = &in.CreatedBy
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actor,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
