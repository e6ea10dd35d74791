package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ecovale/recicla-api/internal/domain/stock"
)

func TestDayWindow_MeioAberto(t *testing.T) {
	loc := time.FixedZone("America/Sao_Paulo", -3*3600)
	ref := time.Date(2026, 3, 15, 14, 30, 0, 0, loc)

	from, to := stock.DayWindow(ref)

	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, loc), to)
	assert.False(t, ref.Before(from) || !ref.Before(to), "o instante de referência deve cair dentro de [from, to)")
}

func TestDayWindow_MeiaNoitePertenceAoDia(t *testing.T) {
	ref := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	from, to := stock.DayWindow(ref)

	assert.Equal(t, ref, from, "meia-noite abre o dia, não fecha o anterior")
	assert.Equal(t, ref.AddDate(0, 0, 1), to)
}

func TestMonthWindow_UltimoDiaDoMes(t *testing.T) {
	ref := time.Date(2026, 1, 31, 23, 59, 59, 0, time.Local)

	from, to := stock.MonthWindow(ref)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), from)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local), to)
}

func TestMonthWindow_Fevereiro(t *testing.T) {
	ref := time.Date(2024, 2, 15, 12, 0, 0, 0, time.Local)

	from, to := stock.MonthWindow(ref)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), to, "ano bissexto não altera o limite superior")
}
