package appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ciadabeleza/salon-scheduler/internal/audit"
	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/infra/repository"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

func setupDB(t *testing.T) (*gorm.DB, *repository.AppointmentGormRepository, *audit.Dispatcher) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	))

	return db, repository.NewAppointmentGormRepository(db), audit.NewDispatcher(audit.New(db))
}

func seedService(t *testing.T, db *gorm.DB, name string, price float64) models.Service {
	t.Helper()
	svc := models.Service{Name: name, DurationMin: 30, Price: price, Active: true}
	require.NoError(t, db.Create(&svc).Error)
	return svc
}

func seedProfessional(t *testing.T, db *gorm.DB, name string, active bool) models.User {
	t.Helper()
	u := models.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@exemplo.com",
		PasswordHash: "x",
		Role:         "profissional",
		Active:       true,
	}
	require.NoError(t, db.Create(&u).Error)
	if !active {
		// O default da coluna é true; desativar exige escrita explícita.
		require.NoError(t, db.Model(&u).Update("active", false).Error)
		u.Active = false
	}
	return u
}

func TestCreateAppointmentFreezesDenormalizedCopies(t *testing.T) {
	db, repo, dispatcher := setupDB(t)
	uc := NewCreateAppointment(repo, dispatcher, "America/Sao_Paulo")

	svc := seedService(t, db, "Corte", 50)
	prof := seedProfessional(t, db, "Julia", true)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName:     "Ana",
		ClientPhone:    "11999990000",
		ServiceID:      svc.ID,
		ProfessionalID: prof.ID,
		Date:           "2025-03-10",
		Time:           "14:30",
		CreatedBy:      "recep-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", ap.ClientName)
	assert.Equal(t, "Corte", ap.ServiceName)
	assert.Equal(t, prof.ID, ap.ProfessionalID)
	assert.Equal(t, "Julia", ap.ProfessionalName)
	assert.Equal(t, "pendente", ap.Status)
	require.NotNil(t, ap.Price)
	assert.Equal(t, 50.0, *ap.Price)

	require.NotNil(t, ap.ScheduledAt)
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, loc).Unix(), ap.ScheduledAt.Unix())

	// Cliente criado pelo telefone.
	var client models.Client
	require.NoError(t, db.First(&client, "phone = ?", "11999990000").Error)
	assert.Equal(t, "Ana", client.Name)
}

func TestCreateAppointmentInvalidDate(t *testing.T) {
	_, repo, dispatcher := setupDB(t)
	uc := NewCreateAppointment(repo, dispatcher, "America/Sao_Paulo")

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName:  "Ana",
		ClientPhone: "1",
		ServiceID:   "s",
		Date:        "10/03/2025",
		Time:        "14h",
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateAppointmentUnknownService(t *testing.T) {
	_, repo, dispatcher := setupDB(t)
	uc := NewCreateAppointment(repo, dispatcher, "America/Sao_Paulo")

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName:  "Ana",
		ClientPhone: "1",
		ServiceID:   "nao-existe",
		Date:        "2025-03-10",
		Time:        "14:30",
	})

	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointmentInactiveProfessional(t *testing.T) {
	db, repo, dispatcher := setupDB(t)
	uc := NewCreateAppointment(repo, dispatcher, "America/Sao_Paulo")

	svc := seedService(t, db, "Corte", 50)
	prof := seedProfessional(t, db, "Julia", false)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName:     "Ana",
		ClientPhone:    "1",
		ServiceID:      svc.ID,
		ProfessionalID: prof.ID,
		Date:           "2025-03-10",
		Time:           "14:30",
	})

	assert.True(t, httperr.IsBusiness(err, "professional_inactive"))
}
