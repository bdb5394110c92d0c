package service

import (
	"bytes"
	"fmt"

	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Burndown"

// ExcelGenerator gera a planilha com as quatro curvas de um milestone
type ExcelGenerator struct{}

// NewExcelGenerator cria um novo gerador de Excel
func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

// Generate gera a planilha a partir de uma resposta de gráfico já
// computada: uma linha por data, uma coluna por curva
func (g *ExcelGenerator) Generate(chart *model.ChartResponse) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Renomeia a sheet padrão
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("renomear sheet: %w", err)
	}

	headers := []string{"Data", "Esforço Restante", "Esforço da Equipe", "Escopo Adicionado", "Ideal"}
	if err := g.writeHeaders(f, headers); err != nil {
		return nil, fmt.Errorf("escrever headers: %w", err)
	}

	if err := g.writeCurves(f, chart); err != nil {
		return nil, fmt.Errorf("escrever curvas: %w", err)
	}

	if err := g.autoFitColumns(f, len(headers)); err != nil {
		return nil, fmt.Errorf("ajustar colunas: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escrever buffer: %w", err)
	}

	return buf, nil
}

// writeHeaders escreve os cabeçalhos no Excel
func (g *ExcelGenerator) writeHeaders(f *excelize.File, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return err
		}
	}

	return nil
}

// writeCurves escreve uma linha por data com o valor de cada curva.
// As quatro curvas cobrem o mesmo conjunto de datas por construção.
func (g *ExcelGenerator) writeCurves(f *excelize.File, chart *model.ChartResponse) error {
	for i, p := range chart.RemainingEffort {
		row := i + 2
		values := []interface{}{
			p.Date.Format(model.DateFormat),
			p.Value,
			chart.TeamEffort[i].Value,
			chart.WorkAdded[i].Value,
			chart.Ideal[i].Value,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// autoFitColumns ajusta a largura das colunas
func (g *ExcelGenerator) autoFitColumns(f *excelize.File, columns int) error {
	for col := 1; col <= columns; col++ {
		name, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheetName, name, name, 18); err != nil {
			return err
		}
	}
	return nil
}
