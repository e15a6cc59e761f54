// Package money formatea montos en rupias con agrupación india (1,00,000)
// para los textos generados por el sistema (comentarios de pagos y facturas).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var enIN = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR devuelve el monto con símbolo ₹ y agrupación india de dígitos,
// con hasta dos decimales (sin ceros de relleno): 100000 -> "₹1,00,000".
func FormatINR(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return enIN.Sprintf("₹%v", number.Decimal(f,
		number.MaxFractionDigits(2),
		number.MinFractionDigits(0),
	))
}
