package model

import (
	"fmt"
	"time"
)

// DateFormat é o formato de data usado em toda a API (somente data, sem hora)
const DateFormat = "2006-01-02"

// CurvePoint é um par (data, valor) de uma curva
type CurvePoint struct {
	Date  time.Time
	Value float64
}

// MarshalJSON serializa o ponto com a data no formato YYYY-MM-DD
func (p CurvePoint) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"date":%q,"value":%g}`, p.Date.Format(DateFormat), p.Value)), nil
}

// Curve é uma sequência ordenada por data de pontos, uma entrada por dia
// do intervalo requisitado, sem lacunas nem datas duplicadas.
type Curve []CurvePoint

// First retorna o valor do primeiro ponto (o baseline da curva)
func (c Curve) First() (float64, bool) {
	if len(c) == 0 {
		return 0, false
	}
	return c[0].Value, true
}

// SameDates verifica se duas curvas cobrem exatamente o mesmo conjunto
// de datas, na mesma ordem
func (c Curve) SameDates(other Curve) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !sameDay(c[i].Date, other[i].Date) {
			return false
		}
	}
	return true
}

// sameDay compara apenas ano/mês/dia, ignorando hora e fuso
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
