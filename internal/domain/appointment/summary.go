package appointment

import "time"

// Summary são os agregados exibidos junto com a lista futura.
type Summary struct {
	TodayCount   int     `json:"todayCount"`
	NextClient   string  `json:"nextClient,omitempty"`
	HasNext      bool    `json:"hasNext"`
	DailyRevenue float64 `json:"dailyRevenue"`
}

// Summarize percorre a lista já ordenada uma única vez. NextClient é o
// cliente do primeiro registro não terminal; achado o primeiro, os demais não
// contam (first match wins). Receita soma os valores dos registros de hoje.
func Summarize(sorted []Record, now time.Time) Summary {
	var s Summary

	for _, r := range sorted {
		if sameDay(r.Scheduled, now) {
			s.TodayCount++
			if r.Price != nil {
				s.DailyRevenue += *r.Price
			}
		}

		if !s.HasNext && !IsTerminal(r.Status) {
			s.NextClient = r.ClientName
			s.HasNext = true
		}
	}
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
