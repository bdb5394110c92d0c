package model

// ChartResponse é o contrato de saída da computação de curvas.
// NoData distingue explicitamente "não há dados para este milestone"
// de curvas válidas porém vazias.
type ChartResponse struct {
	Milestone string `json:"milestone"`
	Unit      string `json:"unit"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	NoData    bool   `json:"no_data"`

	RemainingEffort Curve `json:"remaining_effort,omitempty"`
	TeamEffort      Curve `json:"team_effort,omitempty"`
	WorkAdded       Curve `json:"work_added,omitempty"`
	Ideal           Curve `json:"ideal,omitempty"`
}

// ErrorResponse representa uma resposta de erro da API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SettingsPayload é o payload de leitura/escrita das configurações
// padrão dos gráficos (painel administrativo)
type SettingsPayload struct {
	Unit      string   `json:"unit" binding:"required"`
	DayPolicy string   `json:"day_policy" binding:"required"`
	Blacklist []string `json:"blacklist,omitempty"`
}
