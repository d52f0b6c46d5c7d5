package appointment

import (
	"time"

	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cada transição valida o estado que o chamador leu e escreve o novo status
// com carimbo de atualização. Não há verificação do estado corrente no banco
// na hora da escrita: duas ações simultâneas sobre o mesmo registro terminam
// em last-write-wins (lacuna conhecida, herdada do sistema de origem).

func Accept(ap *models.Appointment, now time.Time) error {
	if err := CanAccept(Resolve(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.UpdatedAt = now
	return nil
}

func Start(ap *models.Appointment, now time.Time) error {
	if err := CanStart(Resolve(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	ap.UpdatedAt = now
	return nil
}

func Finish(ap *models.Appointment, now time.Time) error {
	if err := CanFinish(Resolve(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusDone)
	ap.UpdatedAt = now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Resolve(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.UpdatedAt = now
	return nil
}
