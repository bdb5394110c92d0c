package service

import (
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
)

// WorkAdded deriva a curva de escopo adicionado a partir das curvas de
// esforço restante e de esforço da equipe, pareadas data a data:
//
//	added[0] = 0
//	added[i] = max(0, R[i] − R[i−1] + L[i])
//
// Uma subida do esforço restante não explicada pelo trabalho concluído
// indica escopo novo; deltas negativos (ruído de medição) são cortados
// em zero. Curvas com tamanhos ou datas diferentes são um erro de
// computação, nunca truncadas silenciosamente.
func WorkAdded(remaining, teamEffort model.Curve) (model.Curve, error) {
	if !remaining.SameDates(teamEffort) {
		return nil, model.ErrCurveMismatch
	}

	added := make(model.Curve, 0, len(remaining))
	for i := range remaining {
		var value float64
		if i > 0 {
			value = remaining[i].Value - remaining[i-1].Value + teamEffort[i].Value
			if value < 0 {
				value = 0
			}
		}
		added = append(added, model.CurvePoint{Date: remaining[i].Date, Value: value})
	}

	return added, nil
}

// Ideal computa a curva alvo linear: da estimativa original até zero na
// entrega, decrescendo apenas em dias úteis e plana sobre sequências de
// dias não úteis.
func Ideal(originalEstimate float64, dates, workingDates []time.Time) model.Curve {
	workPerDay := originalEstimate
	if len(workingDates) > 1 {
		workPerDay = originalEstimate / float64(len(workingDates)-1)
	}

	workingSet := make(map[string]struct{}, len(workingDates))
	for _, d := range workingDates {
		workingSet[DayKey(d)] = struct{}{}
	}

	curve := make(model.Curve, 0, len(dates))
	k := 0
	lastValue := originalEstimate
	for _, d := range dates {
		if _, ok := workingSet[DayKey(d)]; ok {
			value := originalEstimate - workPerDay*float64(k)
			curve = append(curve, model.CurvePoint{Date: d, Value: value})
			k++
			lastValue = value
		} else {
			curve = append(curve, model.CurvePoint{Date: d, Value: lastValue})
		}
	}

	return curve
}

// FillForward alinha uma curva esparsa sobre a lista completa de datas,
// carregando o último valor conhecido pelos dias sem dados. Dias
// anteriores ao primeiro ponto recebem o valor do primeiro ponto.
func FillForward(dates []time.Time, sparse model.Curve) model.Curve {
	if len(sparse) == 0 || len(dates) == 0 {
		return nil
	}

	byDay := make(map[string]float64, len(sparse))
	for _, p := range sparse {
		byDay[DayKey(p.Date)] = p.Value
	}

	curve := make(model.Curve, 0, len(dates))
	carried := sparse[0].Value
	for _, d := range dates {
		if v, ok := byDay[DayKey(d)]; ok {
			carried = v
		}
		curve = append(curve, model.CurvePoint{Date: d, Value: carried})
	}

	return curve
}
