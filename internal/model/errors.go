package model

import "errors"

var (
	// ErrInvalidUnit indica unidade de esforço não reconhecida
	ErrInvalidUnit = errors.New("unidade de esforço inválida")

	// ErrInvalidDayPolicy indica política de dias não reconhecida
	ErrInvalidDayPolicy = errors.New("política de dias inválida")

	// ErrInvalidBaseline indica baseline da curva ideal não reconhecido
	ErrInvalidBaseline = errors.New("baseline inválido")

	// ErrMilestoneNotFound indica que o milestone não existe
	ErrMilestoneNotFound = errors.New("milestone não encontrado")

	// ErrNoSchedule indica milestone sem data de início ou de entrega
	ErrNoSchedule = errors.New("milestone sem data de início ou entrega")

	// ErrInvalidDateRange indica intervalo com fim anterior ao início
	ErrInvalidDateRange = errors.New("intervalo de datas inválido")

	// ErrCurveMismatch indica curvas pareadas com tamanhos ou conjuntos
	// de datas diferentes
	ErrCurveMismatch = errors.New("curvas com datas incompatíveis")

	// ErrDataSource indica falha de consulta a um colaborador de dados
	ErrDataSource = errors.New("fonte de dados indisponível")
)
