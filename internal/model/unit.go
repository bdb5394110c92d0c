package model

import "fmt"

// Unit é a unidade de medida de esforço usada nas curvas.
// Enumeração fechada: valores desconhecidos são rejeitados no parse,
// nunca substituídos silenciosamente.
type Unit int

const (
	// UnitItems conta itens de trabalho abertos
	UnitItems Unit = iota
	// UnitHours soma horas restantes/registradas
	UnitHours
	// UnitPoints soma story points
	UnitPoints
)

// ParseUnit converte a representação textual da unidade
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "items":
		return UnitItems, nil
	case "hours":
		return UnitHours, nil
	case "points":
		return UnitPoints, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

// String retorna a forma textual da unidade
func (u Unit) String() string {
	switch u {
	case UnitItems:
		return "items"
	case UnitHours:
		return "hours"
	case UnitPoints:
		return "points"
	}
	return "unknown"
}

// DayPolicy define quais dias do calendário contam como dias úteis
// para a curva ideal.
type DayPolicy int

const (
	// DaysAll considera todos os dias do calendário
	DaysAll DayPolicy = iota
	// DaysWeekdays considera apenas segunda a sexta
	DaysWeekdays
	// DaysCustom exclui apenas as datas presentes na blacklist.
	// Finais de semana NÃO são excluídos automaticamente: o chamador
	// deve incluí-los na blacklist se quiser removê-los.
	DaysCustom
)

// ParseDayPolicy converte a representação textual da política de dias
func ParseDayPolicy(s string) (DayPolicy, error) {
	switch s {
	case "all":
		return DaysAll, nil
	case "weekdays":
		return DaysWeekdays, nil
	case "custom":
		return DaysCustom, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDayPolicy, s)
	}
}

// String retorna a forma textual da política
func (p DayPolicy) String() string {
	switch p {
	case DaysAll:
		return "all"
	case DaysWeekdays:
		return "weekdays"
	case DaysCustom:
		return "custom"
	}
	return "unknown"
}

// Baseline seleciona como a estimativa original da curva ideal é calculada
type Baseline int

const (
	// BaselineFixed usa o primeiro valor da curva de esforço restante
	BaselineFixed Baseline = iota
	// BaselineVariable soma à estimativa original o escopo adicionado
	// acumulado (o alvo cresce junto com o escopo)
	BaselineVariable
)

// ParseBaseline converte a representação textual do baseline
func ParseBaseline(s string) (Baseline, error) {
	switch s {
	case "fixed":
		return BaselineFixed, nil
	case "variable":
		return BaselineVariable, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBaseline, s)
	}
}

// String retorna a forma textual do baseline
func (b Baseline) String() string {
	if b == BaselineVariable {
		return "variable"
	}
	return "fixed"
}
