package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
)

// MilestoneSource fornece milestones e a expansão de escopo
type MilestoneSource interface {
	Get(name string) (*model.Milestone, error)
	Scope(name string) ([]string, error)
}

// SnapshotSource fornece o agregado diário de esforço restante
type SnapshotSource interface {
	QueryRemaining(scope []string, unit model.Unit, from, to time.Time) (model.Curve, error)
}

// ChartService orquestra a computação das quatro curvas do burndown
type ChartService struct {
	milestones MilestoneSource
	snapshots  SnapshotSource
	tracker    *Tracker

	// now é substituível em testes
	now func() time.Time
}

// NewChartService cria um novo serviço de gráficos
func NewChartService(milestones MilestoneSource, snapshots SnapshotSource, tracker *Tracker) *ChartService {
	return &ChartService{
		milestones: milestones,
		snapshots:  snapshots,
		tracker:    tracker,
		now:        time.Now,
	}
}

// BuildChart computa as curvas de um milestone sob as opções dadas.
// Cada chamada é síncrona, sem estado compartilhado: chamadas para
// milestones distintos podem rodar em paralelo.
//
// Falha ao buscar a curva de esforço restante (ou ausência total de
// snapshots) resulta em NoData=true e curta-circuita as demais curvas,
// que dependem do baseline dela. Falha na curva de esforço da equipe
// degrada apenas essa curva para zeros.
func (s *ChartService) BuildChart(ctx context.Context, name string, opts model.ChartOptions) (*model.ChartResponse, error) {
	log := logger.Get(ctx)

	milestone, err := s.milestones.Get(name)
	if err != nil {
		return nil, err
	}
	if !milestone.Chartable() {
		return nil, model.ErrNoSchedule
	}

	start := Day(*milestone.Start)
	due := Day(*milestone.Due)
	if due.Before(start) {
		return nil, fmt.Errorf("%w: entrega %s anterior ao início %s",
			model.ErrInvalidDateRange, DayKey(due), DayKey(start))
	}

	resp := &model.ChartResponse{
		Milestone: milestone.Name,
		Unit:      opts.Unit.String(),
		StartDate: DayKey(start),
		EndDate:   DayKey(due),
	}

	// Fim efetivo: hoje, limitado pela data de entrega
	today := Day(s.now())
	if today.Before(start) {
		// Milestone ainda não começou: nenhum histórico possível
		log.Info().Str("milestone", name).Msg("Milestone ainda não iniciado, sem dados")
		resp.NoData = true
		return resp, nil
	}
	end := today
	if due.Before(end) {
		end = due
	}

	dates := DatesBetween(start, end)

	// A classificação em dias úteis cobre o intervalo completo do
	// milestone: o ritmo ideal é projetado até a entrega
	fullRange := DatesBetween(start, due)
	working, _ := Classify(fullRange, opts.DayPolicy, opts.Blacklist)

	log.Info().
		Str("milestone", name).
		Str("unit", opts.Unit.String()).
		Str("day_policy", opts.DayPolicy.String()).
		Int("days", len(dates)).
		Int("working_days", len(working)).
		Msg("Fase 1: agregando esforço restante")

	scope, err := s.milestones.Scope(name)
	if err != nil {
		log.Error().Err(err).Str("milestone", name).Msg("Erro ao expandir escopo")
		resp.NoData = true
		return resp, nil
	}

	sparse, err := s.snapshots.QueryRemaining(scope, opts.Unit, start, end)
	if err != nil {
		// Falha na curva primária: sem baseline não há o que derivar
		log.Error().Err(err).Str("milestone", name).Msg("Erro na agregação de esforço restante")
		resp.NoData = true
		return resp, nil
	}
	if len(sparse) == 0 {
		log.Info().Str("milestone", name).Msg("Nenhum snapshot registrado para o milestone")
		resp.NoData = true
		return resp, nil
	}

	// Dias sem snapshot carregam o último valor conhecido
	remaining := FillForward(dates, sparse)

	log.Info().Str("milestone", name).Msg("Fase 2: computando esforço da equipe")

	teamEffort, err := s.tracker.TeamEffort(scope, dates, opts.Unit)
	if err != nil {
		// Sub-curva degradada: o restante da resposta continua válido
		log.Warn().Err(err).Str("milestone", name).Msg("Esforço da equipe indisponível, degradando para zeros")
		teamEffort = zeroCurve(dates)
	}

	log.Info().Str("milestone", name).Msg("Fase 3: derivando escopo adicionado e curva ideal")

	workAdded, err := WorkAdded(remaining, teamEffort)
	if err != nil {
		return nil, err
	}

	estimate, _ := remaining.First()
	if opts.Baseline == model.BaselineVariable {
		for _, p := range workAdded {
			estimate += p.Value
		}
	}

	// A curva ideal é computada sobre o intervalo completo e emitida
	// apenas até o fim efetivo, como as demais
	ideal := Ideal(estimate, fullRange, working)[:len(dates)]

	resp.RemainingEffort = remaining
	resp.TeamEffort = teamEffort
	resp.WorkAdded = workAdded
	resp.Ideal = ideal
	return resp, nil
}

// zeroCurve produz uma curva zerada cobrindo todas as datas
func zeroCurve(dates []time.Time) model.Curve {
	curve := make(model.Curve, 0, len(dates))
	for _, d := range dates {
		curve = append(curve, model.CurvePoint{Date: d})
	}
	return curve
}
