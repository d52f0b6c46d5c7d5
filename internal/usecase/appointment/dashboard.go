package appointment

import (
	"context"
	"time"

	domain "github.com/ciadabeleza/salon-scheduler/internal/domain/appointment"
	"github.com/ciadabeleza/salon-scheduler/internal/timezone"
)

// ======================================================
// DASHBOARD (visão administrativa)
// ======================================================

const dashboardLimit = 5

type DashboardData struct {
	Appointments []domain.Record `json:"appointments"`
	TodayCount   int             `json:"todayCount"`
	DailyRevenue float64         `json:"dailyRevenue"`
	NewClients   int64           `json:"newClients"`
}

type Dashboard struct {
	repo domain.Repository
	tz   string
}

func NewDashboard(repo domain.Repository, tz string) *Dashboard {
	return &Dashboard{repo: repo, tz: tz}
}

// Execute monta o painel com duas consultas independentes: agendamentos a
// partir de hoje (limitados, ascendentes) e clientes novos no mês. As duas
// não têm ordem garantida entre si; cada uma reflete seu próprio instante de
// leitura.
func (uc *Dashboard) Execute(ctx context.Context) (*DashboardData, error) {
	loc := timezone.Location(uc.tz)
	now := timezone.NowIn(uc.tz)
	today := domain.StartOfDay(now)

	raw, err := uc.repo.ListFromInstant(ctx, today, dashboardLimit)
	if err != nil {
		return nil, err
	}

	records := domain.ClassifyAll(raw, loc)
	summary := domain.Summarize(records, now)

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	newClients, err := uc.repo.CountClientsSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Appointments: records,
		TodayCount:   summary.TodayCount,
		DailyRevenue: summary.DailyRevenue,
		NewClients:   newClients,
	}, nil
}
