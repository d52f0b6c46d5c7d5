package appointment

import (
	"sort"
	"time"
)

// StartOfDay zera a componente de hora no fuso recebido.
func StartOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Upcoming filtra e ordena a agenda futura de um profissional: só registros
// com instante >= hoje 00:00, ascendente pelo instante normalizado. Empates
// mantêm a ordem de chegada do feed (sort estável). Recalculado por inteiro a
// cada entrega do feed; a cardinalidade é a agenda de um único profissional.
func Upcoming(records []Record, now time.Time) []Record {
	today := StartOfDay(now)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Scheduled.Before(today) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Scheduled.Before(out[j].Scheduled)
	})
	return out
}
