package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func curveOf(start time.Time, values ...float64) model.Curve {
	curve := make(model.Curve, 0, len(values))
	for i, v := range values {
		curve = append(curve, model.CurvePoint{Date: start.AddDate(0, 0, i), Value: v})
	}
	return curve
}

// TestIdealAllDays cobre um milestone de 5 dias com estimativa 10 e
// todos os dias úteis: a curva cai 2.5 por dia até zerar na entrega
func TestIdealAllDays(t *testing.T) {
	dates := DatesBetween(day(2024, time.January, 1), day(2024, time.January, 5))
	working, _ := Classify(dates, model.DaysAll, nil)

	ideal := Ideal(10, dates, working)

	expected := []float64{10, 7.5, 5, 2.5, 0}
	if len(ideal) != len(expected) {
		t.Fatalf("esperado %d pontos, veio %d", len(expected), len(ideal))
	}
	for i, want := range expected {
		if !approx(ideal[i].Value, want) {
			t.Errorf("ponto %d: esperado %v, veio %v", i, want, ideal[i].Value)
		}
	}
}

// TestIdealFlatOverWeekend cobre sexta→segunda com política weekdays:
// a curva fica plana no sábado e no domingo
func TestIdealFlatOverWeekend(t *testing.T) {
	// 2024-01-05 é sexta-feira
	dates := DatesBetween(day(2024, time.January, 5), day(2024, time.January, 8))
	working, _ := Classify(dates, model.DaysWeekdays, nil)

	ideal := Ideal(6, dates, working)

	expected := []float64{6, 6, 6, 0}
	for i, want := range expected {
		if !approx(ideal[i].Value, want) {
			t.Errorf("ponto %d (%s): esperado %v, veio %v", i, DayKey(ideal[i].Date), want, ideal[i].Value)
		}
	}
}

// TestIdealSingleWorkingDay garante que um único dia útil não divide
// por zero: o ritmo diário vira a estimativa inteira
func TestIdealSingleWorkingDay(t *testing.T) {
	dates := DatesBetween(day(2024, time.January, 1), day(2024, time.January, 1))
	working, _ := Classify(dates, model.DaysAll, nil)

	ideal := Ideal(8, dates, working)

	if len(ideal) != 1 {
		t.Fatalf("esperado 1 ponto, veio %d", len(ideal))
	}
	if !approx(ideal[0].Value, 8) {
		t.Errorf("esperado 8, veio %v", ideal[0].Value)
	}
}

// TestIdealNoWorkingDays mantém a curva plana na estimativa quando
// nenhum dia do intervalo é útil
func TestIdealNoWorkingDays(t *testing.T) {
	// Sábado e domingo com política weekdays
	dates := DatesBetween(day(2024, time.January, 6), day(2024, time.January, 7))
	working, _ := Classify(dates, model.DaysWeekdays, nil)

	ideal := Ideal(5, dates, working)

	for i, p := range ideal {
		if !approx(p.Value, 5) {
			t.Errorf("ponto %d: esperado 5, veio %v", i, p.Value)
		}
	}
}

func TestWorkAddedClampsAtZero(t *testing.T) {
	start := day(2024, time.February, 1)
	// Dia 2: queda de 3 com 1 concluído → delta −2, cortado em 0
	// Dia 3: subida de 2 com 1 concluído → 3 de escopo novo
	remaining := curveOf(start, 10, 7, 9)
	teamEffort := curveOf(start, 0, 1, 1)

	added, err := WorkAdded(remaining, teamEffort)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	expected := []float64{0, 0, 3}
	for i, want := range expected {
		if !approx(added[i].Value, want) {
			t.Errorf("ponto %d: esperado %v, veio %v", i, want, added[i].Value)
		}
	}
}

func TestWorkAddedMismatchedCurves(t *testing.T) {
	start := day(2024, time.February, 1)
	remaining := curveOf(start, 10, 9, 8)
	teamEffort := curveOf(start, 0, 1)

	if _, err := WorkAdded(remaining, teamEffort); !errors.Is(err, model.ErrCurveMismatch) {
		t.Fatalf("esperado ErrCurveMismatch, veio %v", err)
	}

	// Mesmo tamanho, datas diferentes
	shifted := curveOf(start.AddDate(0, 0, 1), 0, 1, 0)
	if _, err := WorkAdded(remaining, shifted); !errors.Is(err, model.ErrCurveMismatch) {
		t.Fatalf("esperado ErrCurveMismatch para datas deslocadas, veio %v", err)
	}
}

// TestWorkAddedProperties valida os invariantes da curva derivada para
// curvas arbitrárias pareadas
func TestWorkAddedProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genPaired := gen.SliceOfN(30, gopter.CombineGens(
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 20),
	).Map(func(values []interface{}) [2]float64 {
		return [2]float64{values[0].(float64), values[1].(float64)}
	}))

	properties.Property("escopo adicionado nunca é negativo e começa em zero", prop.ForAll(
		func(pairs [][2]float64) bool {
			start := day(2024, time.January, 1)
			remaining := make(model.Curve, 0, len(pairs))
			teamEffort := make(model.Curve, 0, len(pairs))
			for i, p := range pairs {
				date := start.AddDate(0, 0, i)
				remaining = append(remaining, model.CurvePoint{Date: date, Value: p[0]})
				teamEffort = append(teamEffort, model.CurvePoint{Date: date, Value: p[1]})
			}

			added, err := WorkAdded(remaining, teamEffort)
			if err != nil {
				return false
			}
			if len(added) > 0 && added[0].Value != 0 {
				return false
			}
			for _, p := range added {
				if p.Value < 0 {
					return false
				}
			}
			return remaining.SameDates(added)
		},
		genPaired,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFillForwardCarriesLastValue(t *testing.T) {
	start := day(2024, time.March, 1)
	dates := DatesBetween(start, start.AddDate(0, 0, 4))

	// Snapshots apenas nos dias 1 e 3
	sparse := model.Curve{
		{Date: start, Value: 12},
		{Date: start.AddDate(0, 0, 2), Value: 8},
	}

	filled := FillForward(dates, sparse)

	expected := []float64{12, 12, 8, 8, 8}
	if len(filled) != len(expected) {
		t.Fatalf("esperado %d pontos, veio %d", len(expected), len(filled))
	}
	for i, want := range expected {
		if !approx(filled[i].Value, want) {
			t.Errorf("ponto %d: esperado %v, veio %v", i, want, filled[i].Value)
		}
	}
}

func TestFillForwardBeforeFirstPoint(t *testing.T) {
	start := day(2024, time.March, 1)
	dates := DatesBetween(start, start.AddDate(0, 0, 2))

	// Primeiro snapshot só no segundo dia
	sparse := model.Curve{{Date: start.AddDate(0, 0, 1), Value: 5}}

	filled := FillForward(dates, sparse)

	for i, p := range filled {
		if !approx(p.Value, 5) {
			t.Errorf("ponto %d: esperado 5, veio %v", i, p.Value)
		}
	}
}

func TestFillForwardEmptySparse(t *testing.T) {
	dates := DatesBetween(day(2024, time.March, 1), day(2024, time.March, 3))
	if filled := FillForward(dates, nil); filled != nil {
		t.Fatalf("esperado nil para curva esparsa vazia, veio %d pontos", len(filled))
	}
}
