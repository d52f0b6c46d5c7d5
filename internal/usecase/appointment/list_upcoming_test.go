package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

func seedFor(t *testing.T, db *gorm.DB, profID, profName, client, status string, when time.Time) {
	t.Helper()
	ap := models.Appointment{
		ClientName:       client,
		ProfessionalID:   profID,
		ProfessionalName: profName,
		ScheduledAt:      &when,
		Status:           status,
	}
	require.NoError(t, db.Create(&ap).Error)
}

func TestListUpcomingByProfessionalID(t *testing.T) {
	db, repo, _ := setupDB(t)
	uc := NewListUpcoming(repo, "UTC")

	now := time.Now().UTC()
	tomorrow := now.AddDate(0, 0, 1)

	seedFor(t, db, "p1", "Julia", "Ana", "pendente", tomorrow)
	seedFor(t, db, "p1", "Julia", "Bia", "confirmado", tomorrow.Add(time.Hour))
	// Terminal fica fora da consulta por ID.
	seedFor(t, db, "p1", "Julia", "Caio", "atendido", tomorrow.Add(2*time.Hour))
	// Outro profissional não aparece.
	seedFor(t, db, "p2", "Rita", "Duda", "pendente", tomorrow)
	// Passado fica fora.
	seedFor(t, db, "p1", "Julia", "Eva", "pendente", now.AddDate(0, 0, -2))

	list, err := uc.ByProfessionalID(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, list.Records, 2)
	assert.Equal(t, "Ana", list.Records[0].ClientName)
	assert.Equal(t, "Bia", list.Records[1].ClientName)

	assert.True(t, list.Summary.HasNext)
	assert.Equal(t, "Ana", list.Summary.NextClient)
}

func TestListUpcomingByProfessionalNameIncludesTerminal(t *testing.T) {
	db, repo, _ := setupDB(t)
	uc := NewListUpcoming(repo, "UTC")

	now := time.Now().UTC()
	tomorrow := now.AddDate(0, 0, 1)

	// A visão legada casa pelo nome e mostra também os terminais futuros.
	seedFor(t, db, "p1", "Julia", "Ana", "cancelado", tomorrow)
	seedFor(t, db, "p1", "Julia", "Bia", "pendente", tomorrow.Add(time.Hour))

	list, err := uc.ByProfessionalName(context.Background(), "Julia")
	require.NoError(t, err)

	require.Len(t, list.Records, 2)
	assert.Equal(t, "Ana", list.Records[0].ClientName)

	// O próximo cliente pula o terminal.
	assert.Equal(t, "Bia", list.Summary.NextClient)
}

func TestListUpcomingSortsByNormalizedInstant(t *testing.T) {
	db, repo, _ := setupDB(t)
	uc := NewListUpcoming(repo, "UTC")

	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	// Formas legadas diferentes, ordenadas pelo instante normalizado.
	late := models.Appointment{
		ClientName: "Tarde", ProfessionalID: "p1", ProfessionalName: "Julia",
		Status:  "pendente",
		RawDate: tomorrow.Format("2006-01-02"), RawTime: "18:00",
	}
	require.NoError(t, db.Create(&late).Error)

	early := models.Appointment{
		ClientName: "Cedo", ProfessionalID: "p1", ProfessionalName: "Julia",
		Status:     "pendente",
		RawEpochMS: time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, time.UTC).UnixMilli(),
	}
	require.NoError(t, db.Create(&early).Error)

	list, err := uc.ByProfessionalName(context.Background(), "Julia")
	require.NoError(t, err)

	require.Len(t, list.Records, 2)
	assert.Equal(t, "Cedo", list.Records[0].ClientName)
	assert.Equal(t, "Tarde", list.Records[1].ClientName)
}

func TestDashboardAggregates(t *testing.T) {
	db, repo, _ := setupDB(t)
	uc := NewDashboard(repo, "UTC")

	now := time.Now().UTC()

	price := 50.0
	todayAp := models.Appointment{
		ClientName: "Ana", ProfessionalID: "p1",
		ScheduledAt: &now, Status: "confirmado", Price: &price,
	}
	require.NoError(t, db.Create(&todayAp).Error)

	tomorrow := now.AddDate(0, 0, 1)
	require.NoError(t, db.Create(&models.Appointment{
		ClientName: "Bia", ProfessionalID: "p1",
		ScheduledAt: &tomorrow, Status: "pendente",
	}).Error)

	require.NoError(t, db.Create(&models.Client{Name: "Nova", Phone: "1"}).Error)

	data, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Len(t, data.Appointments, 2)
	assert.Equal(t, 1, data.TodayCount)
	assert.Equal(t, 50.0, data.DailyRevenue)
	assert.EqualValues(t, 1, data.NewClients)
}
