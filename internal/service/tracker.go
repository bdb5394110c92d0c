package service

import (
	"fmt"
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
)

// EventSource fornece as transições de status do escopo, ascendentes
// por tempo
type EventSource interface {
	QueryChanges(scope []string, from, to time.Time) ([]model.StatusChange, error)
}

// WorkLogSource fornece os segundos trabalhados no escopo por dia
type WorkLogSource interface {
	SecondsLogged(scope []string, date time.Time) (int64, error)
}

// StatusSource fornece o conjunto de status fechados por tipo de item
type StatusSource interface {
	ClosedStatuses(itemType string) (map[string]struct{}, error)
}

// Tracker computa a curva de esforço da equipe: quanto trabalho foi
// concluído em cada dia do intervalo
type Tracker struct {
	events   EventSource
	workLogs WorkLogSource
	statuses StatusSource
}

// NewTracker cria um novo tracker de transições
func NewTracker(events EventSource, workLogs WorkLogSource, statuses StatusSource) *Tracker {
	return &Tracker{
		events:   events,
		workLogs: workLogs,
		statuses: statuses,
	}
}

// TeamEffort retorna a curva de esforço da equipe cobrindo cada data da
// lista exatamente uma vez (dias sem eventos valem 0).
//
// Para items/points as transições do dia são reproduzidas em ordem contra
// um conjunto de fechados do dia: fechar um item reaberto no mesmo dia
// conta como um único fechamento; reabrir sem refechar naquele dia zera a
// contribuição do item. Para hours o valor do dia é simplesmente o total
// de segundos registrados / 3600, independente de transições.
func (t *Tracker) TeamEffort(scope []string, dates []time.Time, unit model.Unit) (model.Curve, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	switch unit {
	case model.UnitHours:
		return t.loggedHours(scope, dates)
	case model.UnitItems, model.UnitPoints:
		return t.closedPerDay(scope, dates, unit)
	default:
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidUnit, unit)
	}
}

// loggedHours soma as horas registradas por dia
func (t *Tracker) loggedHours(scope []string, dates []time.Time) (model.Curve, error) {
	curve := make(model.Curve, 0, len(dates))
	for _, date := range dates {
		seconds, err := t.workLogs.SecondsLogged(scope, date)
		if err != nil {
			return nil, fmt.Errorf("horas do dia %s: %w", DayKey(date), err)
		}
		curve = append(curve, model.CurvePoint{
			Date:  date,
			Value: float64(seconds) / 3600,
		})
	}
	return curve, nil
}

// closedPerDay reproduz as transições de status dia a dia
func (t *Tracker) closedPerDay(scope []string, dates []time.Time, unit model.Unit) (model.Curve, error) {
	from := dates[0]
	to := dates[len(dates)-1].AddDate(0, 0, 1)

	changes, err := t.events.QueryChanges(scope, from, to)
	if err != nil {
		return nil, fmt.Errorf("transições do escopo: %w", err)
	}

	// Agrupa por dia preservando a ordem temporal dentro de cada grupo
	byDay := make(map[string][]model.StatusChange)
	for _, c := range changes {
		key := DayKey(c.At)
		byDay[key] = append(byDay[key], c)
	}

	// Cache do registro de status fechados por tipo de item
	closedByType := make(map[string]map[string]struct{})
	closedFor := func(itemType string) (map[string]struct{}, error) {
		if set, ok := closedByType[itemType]; ok {
			return set, nil
		}
		set, err := t.statuses.ClosedStatuses(itemType)
		if err != nil {
			return nil, err
		}
		closedByType[itemType] = set
		return set, nil
	}

	curve := make(model.Curve, 0, len(dates))
	for _, date := range dates {
		closedToday := make(map[string]struct{})
		efforts := make(map[string]float64)

		for _, c := range byDay[DayKey(date)] {
			closedSet, err := closedFor(c.ItemType)
			if err != nil {
				return nil, fmt.Errorf("status fechados de %q: %w", c.ItemType, err)
			}

			_, oldClosed := closedSet[c.OldStatus]
			_, newClosed := closedSet[c.NewStatus]

			switch {
			case !oldClosed && newClosed:
				// Fechamento: registra o item e, para points, o valor
				// de esforço no momento da transição
				closedToday[c.ItemID] = struct{}{}
				if unit == model.UnitPoints {
					if _, recorded := efforts[c.ItemID]; !recorded {
						efforts[c.ItemID] = c.Effort
					}
				}
			case oldClosed && !newClosed:
				// Reabertura: remove o item; ausência não é erro
				// (o fechamento pode ter ocorrido em dia anterior)
				delete(closedToday, c.ItemID)
				delete(efforts, c.ItemID)
			}
		}

		var value float64
		if unit == model.UnitItems {
			value = float64(len(closedToday))
		} else {
			for _, e := range efforts {
				value += e
			}
		}
		curve = append(curve, model.CurvePoint{Date: date, Value: value})
	}

	return curve, nil
}
