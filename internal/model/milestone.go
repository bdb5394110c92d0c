package model

import "time"

// Milestone representa um marco de trabalho agendado.
// Start e Due são opcionais no banco; as curvas só são computáveis
// quando ambos estão presentes.
type Milestone struct {
	Name     string     `json:"name"`
	Start    *time.Time `json:"start,omitempty"`
	Due      *time.Time `json:"due,omitempty"`
	Children []string   `json:"children,omitempty"`
}

// Chartable indica se o milestone tem dados suficientes para gerar curvas
func (m Milestone) Chartable() bool {
	return m.Start != nil && m.Due != nil
}

// StatusChange é um fato histórico imutável: uma transição de status
// de um item de trabalho, ordenada no tempo.
type StatusChange struct {
	ItemID    string    `json:"item_id"`
	At        time.Time `json:"at"`
	ItemType  string    `json:"item_type"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	// Effort é o valor de esforço do item no momento da transição
	// (zero quando não registrado)
	Effort float64 `json:"effort,omitempty"`
}

// ChartOptions é a configuração explícita, por requisição, de uma
// computação de curvas. Nenhuma leitura de configuração global ambiente.
type ChartOptions struct {
	Unit      Unit
	DayPolicy DayPolicy
	Baseline  Baseline
	// Blacklist são as datas não úteis quando DayPolicy == DaysCustom
	Blacklist []time.Time
}
