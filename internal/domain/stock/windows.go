package stock

import "time"

// Janelas de calendário usadas nas checagens de teto e de unicidade diária.
// Dia = meia-noite a meia-noite no fuso local; mês = primeiro a último dia.
// Os intervalos devolvidos são meio-abertos [from, to).

// DayWindow devolve o dia civil que contém t.
func DayWindow(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}

// MonthWindow devolve o mês civil que contém t.
func MonthWindow(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}
