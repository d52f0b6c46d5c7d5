package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciadabeleza/salon-scheduler/internal/httperr"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

func TestAcceptFromBothInitialLabels(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, status := range []string{"agendado", "pendente"} {
		ap := &models.Appointment{Status: status}

		require.NoError(t, Accept(ap, now))
		assert.Equal(t, "confirmado", ap.Status)
		assert.Equal(t, now, ap.UpdatedAt)
	}
}

func TestFullLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: "pendente"}

	require.NoError(t, Accept(ap, now))
	require.NoError(t, Start(ap, now))
	require.NoError(t, Finish(ap, now))
	assert.Equal(t, "atendido", ap.Status)

	// Terminal: nada mais é permitido.
	assert.True(t, httperr.IsBusiness(Cancel(ap, now), "invalid_state"))
	assert.True(t, httperr.IsBusiness(Accept(ap, now), "invalid_state"))
}

func TestCancelFromAnyNonTerminal(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, status := range []string{"agendado", "pendente", "confirmado", "em_andamento"} {
		ap := &models.Appointment{Status: status}

		require.NoError(t, Cancel(ap, now))
		assert.Equal(t, "cancelado", ap.Status)
	}
}

func TestStartRequiresConfirmed(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: "pendente"}
	err := Start(ap, now)

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, "pendente", ap.Status)
}
