package view

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dbTimeout = 5 * time.Second

var printer = message.NewPrinter(language.English)

// FormatAmount renders a ledger amount with the currency symbol of code,
// falling back to a plain two-decimal number for unknown codes.
func FormatAmount(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2)
	}

	return printer.Sprint(currency.Symbol(unit.Amount(amount.Round(2).InexactFloat64())))
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatAge renders how long ago t was, with the exact date for reference.
func FormatAge(t time.Time) string {
	return fmt.Sprintf("%s (%s)", humanize.Time(t), t.Format("2006-01-02 15:04"))
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
