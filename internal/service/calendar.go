package service

import (
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
)

// DatesBetween retorna cada dia do calendário de start a end, inclusivos.
// O resultado tem (end-start em dias) + 1 entradas; vazio quando end é
// anterior a start.
func DatesBetween(start, end time.Time) []time.Time {
	start = Day(start)
	end = Day(end)
	if end.Before(start) {
		return nil
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Classify particiona as datas em (úteis, não úteis) conforme a política:
//   - DaysAll: todas as datas são úteis
//   - DaysWeekdays: sábados e domingos são não úteis
//   - DaysCustom: apenas as datas presentes na blacklist são não úteis;
//     finais de semana precisam estar na blacklist para serem excluídos
func Classify(dates []time.Time, policy model.DayPolicy, blacklist []time.Time) (working, nonWorking []time.Time) {
	switch policy {
	case model.DaysAll:
		return dates, nil

	case model.DaysWeekdays:
		for _, d := range dates {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				nonWorking = append(nonWorking, d)
			} else {
				working = append(working, d)
			}
		}
		return working, nonWorking

	case model.DaysCustom:
		blacklisted := make(map[string]struct{}, len(blacklist))
		for _, d := range blacklist {
			blacklisted[DayKey(d)] = struct{}{}
		}
		for _, d := range dates {
			if _, ok := blacklisted[DayKey(d)]; ok {
				nonWorking = append(nonWorking, d)
			} else {
				working = append(working, d)
			}
		}
		return working, nonWorking
	}

	// Políticas são validadas no parse; aqui só chegam valores conhecidos
	return dates, nil
}

// Day normaliza um instante para meia-noite UTC do mesmo dia
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey retorna a chave YYYY-MM-DD de um instante
func DayKey(t time.Time) string {
	return t.Format(model.DateFormat)
}
