package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

func TestNormalizeResolvesThreeShapesToSameInstant(t *testing.T) {
	loc := time.UTC
	want := time.Date(2025, 3, 10, 14, 30, 0, 0, loc)

	typed := want
	cases := []struct {
		name string
		ap   models.Appointment
	}{
		{"coluna tipada", models.Appointment{ScheduledAt: &typed}},
		{"epoch em milissegundos", models.Appointment{RawEpochMS: want.UnixMilli()}},
		{"string data e hora", models.Appointment{RawDate: "2025-03-10", RawTime: "14:30"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Normalize(&tc.ap, loc)
			require.True(t, ok)
			assert.True(t, got.Equal(want), "esperado %v, veio %v", want, got)
		})
	}
}

func TestNormalizeTypedColumnWinsOverRawFields(t *testing.T) {
	loc := time.UTC
	typed := time.Date(2025, 3, 10, 14, 30, 0, 0, loc)

	ap := models.Appointment{
		ScheduledAt: &typed,
		RawEpochMS:  time.Date(2024, 1, 1, 0, 0, 0, 0, loc).UnixMilli(),
		RawDate:     "2023-06-01",
		RawTime:     "09:00",
	}

	got, ok := Normalize(&ap, loc)
	require.True(t, ok)
	assert.True(t, got.Equal(typed))
}

func TestNormalizeDateOnlyString(t *testing.T) {
	got, ok := Normalize(&models.Appointment{RawDate: "2025-03-10"}, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeUnrecognizedShape(t *testing.T) {
	cases := []models.Appointment{
		{},
		{RawDate: "10/03/2025"},
		{RawDate: "amanhã"},
	}

	for _, ap := range cases {
		got, ok := Normalize(&ap, time.UTC)
		assert.False(t, ok)
		assert.True(t, got.IsZero())
	}
}

func TestClassifyUnknownStatusFallsBackToPending(t *testing.T) {
	rec := Classify(&models.Appointment{Status: "algo_antigo"}, time.UTC)

	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, "Pendente", rec.Display.Label)
	assert.Equal(t, []Action{ActionAccept, ActionCancel}, rec.Actions)
}

func TestClassifyAllPreservesFeedOrder(t *testing.T) {
	ms := []models.Appointment{
		{ID: "b", Status: "confirmado"},
		{ID: "a", Status: "pendente"},
	}

	recs := ClassifyAll(ms, time.UTC)

	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].ID)
	assert.Equal(t, "a", recs[1].ID)
}
