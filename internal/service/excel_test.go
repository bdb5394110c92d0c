package service

import (
	"testing"
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestExcelGenerate(t *testing.T) {
	start := day(2024, time.May, 1)
	chart := &model.ChartResponse{
		Milestone:       "v1.0",
		Unit:            "items",
		StartDate:       "2024-05-01",
		EndDate:         "2024-05-03",
		RemainingEffort: curveOf(start, 10, 8, 7),
		TeamEffort:      curveOf(start, 0, 2, 1),
		WorkAdded:       curveOf(start, 0, 0, 0),
		Ideal:           curveOf(start, 10, 5, 0),
	}

	buf, err := NewExcelGenerator().Generate(chart)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("planilha gerada inválida: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Burndown")
	if err != nil {
		t.Fatalf("erro ao ler sheet: %v", err)
	}

	// Cabeçalho + uma linha por data
	if len(rows) != 4 {
		t.Fatalf("esperado 4 linhas, veio %d", len(rows))
	}
	if rows[0][0] != "Data" || rows[0][4] != "Ideal" {
		t.Errorf("cabeçalhos inesperados: %v", rows[0])
	}
	if rows[1][0] != "2024-05-01" {
		t.Errorf("data da primeira linha: esperado 2024-05-01, veio %s", rows[1][0])
	}
	if rows[2][2] != "2" {
		t.Errorf("esforço da equipe do segundo dia: esperado 2, veio %s", rows[2][2])
	}
}

func TestExcelGenerateEmptyChart(t *testing.T) {
	chart := &model.ChartResponse{Milestone: "v1.0", Unit: "items", NoData: true}

	buf, err := NewExcelGenerator().Generate(chart)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("planilha gerada inválida: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Burndown")
	if err != nil {
		t.Fatalf("erro ao ler sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("esperado apenas o cabeçalho, veio %d linhas", len(rows))
	}
}
