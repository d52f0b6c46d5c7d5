package appointment

import "github.com/ciadabeleza/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	// Agendado e pendente são o mesmo estágio do ciclo: criado, aguardando
	// confirmação do profissional. Registros antigos usam "agendado".
	StatusScheduled  Status = "agendado"
	StatusPending    Status = "pendente"
	StatusConfirmed  Status = "confirmado"
	StatusInProgress Status = "em_andamento"
	StatusDone       Status = "atendido"
	StatusCancelled  Status = "cancelado"
)

// Resolve interpreta o status bruto vindo do banco. Status vazio ou
// desconhecido é tratado como pendente (estágio inicial, não terminal).
func Resolve(raw string) Status {
	switch Status(raw) {
	case StatusScheduled, StatusPending, StatusConfirmed, StatusInProgress, StatusDone, StatusCancelled:
		return Status(raw)
	default:
		return StatusPending
	}
}

// IsTerminal indica que nenhuma transição adicional é permitida pela UI.
func IsTerminal(s Status) bool {
	return s == StatusDone || s == StatusCancelled
}

// IsAwaiting cobre os dois rótulos históricos do estágio inicial.
func IsAwaiting(s Status) bool {
	return s == StatusScheduled || s == StatusPending
}

// ===============================
// Validations
// ===============================

// CanAccept define se um agendamento pode ser aceito pelo profissional
func CanAccept(current Status) error {
	if !IsAwaiting(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanStart define se um atendimento pode ser iniciado
func CanStart(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanFinish define se um atendimento pode ser finalizado
func CanFinish(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ===============================
// Available Actions
// ===============================

type Action string

const (
	ActionAccept Action = "accept"
	ActionStart  Action = "start"
	ActionFinish Action = "finish"
	ActionCancel Action = "cancel"
)

// AvailableActions lista as ações que a UI pode oferecer para o status atual.
// Status terminal não recebe nenhuma ação.
func AvailableActions(current Status) []Action {
	if IsTerminal(current) {
		return nil
	}

	actions := make([]Action, 0, 2)
	switch {
	case IsAwaiting(current):
		actions = append(actions, ActionAccept)
	case current == StatusConfirmed:
		actions = append(actions, ActionStart)
	case current == StatusInProgress:
		actions = append(actions, ActionFinish)
	}
	return append(actions, ActionCancel)
}

// ===============================
// Display
// ===============================

type Display struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}

var displays = map[Status]Display{
	StatusScheduled:  {Label: "Agendado", Category: "scheduled"},
	StatusPending:    {Label: "Pendente", Category: "scheduled"},
	StatusConfirmed:  {Label: "Confirmado", Category: "confirmed"},
	StatusInProgress: {Label: "Em andamento", Category: "in_progress"},
	StatusDone:       {Label: "Atendido", Category: "done"},
	StatusCancelled:  {Label: "Cancelado", Category: "cancelled"},
}

// DisplayFor resolve rótulo e categoria visual. Desconhecido cai na categoria
// mais antiga do ciclo, como um registro recém-criado.
func DisplayFor(s Status) Display {
	if d, ok := displays[s]; ok {
		return d
	}
	return displays[StatusPending]
}
