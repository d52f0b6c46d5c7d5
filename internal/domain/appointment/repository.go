package appointment

import (
	"context"
	"time"

	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// ListByProfessionalName cobre a visão que casa pelo nome desnormalizado.
	ListByProfessionalName(
		ctx context.Context,
		name string,
	) ([]models.Appointment, error)

	// ListByProfessionalID cobre a visão que casa pelo identificador, com
	// filtro de pertinência de status (set-membership).
	ListByProfessionalID(
		ctx context.Context,
		professionalID string,
		statuses []string,
	) ([]models.Appointment, error)

	// ListFromInstant é a consulta do painel: instante >= from, ascendente,
	// limitada.
	ListFromInstant(
		ctx context.Context,
		from time.Time,
		limit int,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SetStatus grava status + atualizadoEm por ID, sem conferir o estado
	// corrente (last write wins).
	SetStatus(
		ctx context.Context,
		id string,
		status Status,
		now time.Time,
	) error

	MarkNotified(
		ctx context.Context,
		id string,
	) error

	// DeleteAppointment é o caminho administrativo, fora do ciclo de vida.
	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	// -------- Reference data --------
	GetService(
		ctx context.Context,
		id string,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		id string,
	) (*models.User, error)

	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	CountClientsSince(
		ctx context.Context,
		from time.Time,
	) (int64, error)
}
