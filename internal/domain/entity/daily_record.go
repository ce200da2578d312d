package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRecord cifras financieras de una plataforma en un día calendario.
// Los fees llegan normalmente en negativo desde los exports del marketplace;
// el settlement se deriva siempre con la misma convención de signos.
type DailyRecord struct {
	Date        time.Time
	Revenue     decimal.Decimal
	Fees        decimal.Decimal
	Adjustments decimal.Decimal
}

// Settlement ingreso neto liquidado del día: revenue + fees + adjustments.
// Se deriva siempre, nunca se almacena por separado.
func (r DailyRecord) Settlement() decimal.Decimal {
	return r.Revenue.Add(r.Fees).Add(r.Adjustments)
}

// MonthKey clave de mes "YYYY-MM" del registro (cero-padded, de modo que el
// orden lexicográfico coincide con el cronológico).
func (r DailyRecord) MonthKey() string {
	return r.Date.Format("2006-01")
}

// PlatformRollup agregado por plataforma con su detalle diario.
type PlatformRollup struct {
	Platform    Platform
	Revenue     decimal.Decimal
	Fees        decimal.Decimal
	Adjustments decimal.Decimal
	PerDay      []DailyRecord
}

// Settlement neto liquidado del agregado completo.
func (p PlatformRollup) Settlement() decimal.Decimal {
	return p.Revenue.Add(p.Fees).Add(p.Adjustments)
}

// NewPlatformRollup construye el agregado sumando los registros diarios.
func NewPlatformRollup(platform Platform, perDay []DailyRecord) PlatformRollup {
	roll := PlatformRollup{Platform: platform, PerDay: perDay}
	for _, d := range perDay {
		roll.Revenue = roll.Revenue.Add(d.Revenue)
		roll.Fees = roll.Fees.Add(d.Fees)
		roll.Adjustments = roll.Adjustments.Add(d.Adjustments)
	}
	return roll
}

// FilterRange devuelve un rollup derivado restringido a [start, end]
// (extremos inclusivos; nil = sin límite). Nunca muta el rollup original.
func (p PlatformRollup) FilterRange(start, end *time.Time) PlatformRollup {
	filtered := make([]DailyRecord, 0, len(p.PerDay))
	for _, d := range p.PerDay {
		if start != nil && d.Date.Before(*start) {
			continue
		}
		if end != nil && d.Date.After(*end) {
			continue
		}
		filtered = append(filtered, d)
	}
	return NewPlatformRollup(p.Platform, filtered)
}
