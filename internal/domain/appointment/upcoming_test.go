package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingFiltersBeforeToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	records := []Record{
		{ID: "ontem", Scheduled: time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)},
		{ID: "hoje-meia-noite", Scheduled: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "hoje-mais-cedo", Scheduled: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "amanha", Scheduled: time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)},
	}

	got := Upcoming(records, now)

	require.Len(t, got, 3)
	// Hoje 00:00 em diante entra, mesmo que o horário já tenha passado.
	assert.Equal(t, "hoje-meia-noite", got[0].ID)
	assert.Equal(t, "hoje-mais-cedo", got[1].ID)
	assert.Equal(t, "amanha", got[2].ID)
}

func TestUpcomingExcludesUnnormalizedRecords(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	records := []Record{
		{ID: "sem-horario"}, // instante zero
		{ID: "ok", Scheduled: now},
	}

	got := Upcoming(records, now)

	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestUpcomingTiesKeepFeedOrder(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	same := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	records := []Record{
		{ID: "depois", Scheduled: same.Add(time.Hour)},
		{ID: "a", Scheduled: same},
		{ID: "b", Scheduled: same},
	}

	got := Upcoming(records, now)

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "depois", got[2].ID)
}
