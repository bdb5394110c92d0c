package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCurvePointMarshalJSON(t *testing.T) {
	p := CurvePoint{
		Date:  time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
		Value: 7.5,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	// A hora do dia não vaza para o JSON
	if string(data) != `{"date":"2024-03-05","value":7.5}` {
		t.Errorf("JSON inesperado: %s", data)
	}
}

func TestCurveSameDates(t *testing.T) {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	a := Curve{{Date: base}, {Date: base.AddDate(0, 0, 1)}}

	// Mesmo dia em horas diferentes ainda é a mesma data
	b := Curve{{Date: base.Add(10 * time.Hour)}, {Date: base.AddDate(0, 0, 1).Add(3 * time.Hour)}}
	if !a.SameDates(b) {
		t.Error("curvas com os mesmos dias deveriam coincidir")
	}

	if a.SameDates(a[:1]) {
		t.Error("tamanhos diferentes não podem coincidir")
	}

	shifted := Curve{{Date: base.AddDate(0, 0, 1)}, {Date: base.AddDate(0, 0, 2)}}
	if a.SameDates(shifted) {
		t.Error("datas deslocadas não podem coincidir")
	}
}

func TestCurveFirst(t *testing.T) {
	if _, ok := Curve(nil).First(); ok {
		t.Error("curva vazia não tem primeiro valor")
	}
	c := Curve{{Value: 42}, {Value: 1}}
	if v, ok := c.First(); !ok || v != 42 {
		t.Errorf("First() = %v, %v", v, ok)
	}
}
