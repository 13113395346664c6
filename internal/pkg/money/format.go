// Package money renders whole-unit ruble amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const Currency = "RUB"

var printer = message.NewPrinter(language.Russian)

// FormatRUB groups digits using Russian conventions, e.g. "105 504 ₽".
func FormatRUB(amount int64) string {
	return printer.Sprintf("%d ₽", amount)
}
