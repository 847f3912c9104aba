package utils

import (
	"math"
	"strconv"
)

type currencyRate struct {
	Symbol     string
	Multiplier float64
}

// Table de conversion statique, identique à celle du front.
// Ce ne sont PAS des taux de change vivants : les valeurs font partie du contrat.
var currencyRates = map[string]currencyRate{
	"IN": {Symbol: "₹", Multiplier: 1},
	"EU": {Symbol: "€", Multiplier: 0.012},
	"US": {Symbol: "$", Multiplier: 0.013},
	"AE": {Symbol: "د.إ", Multiplier: 0.048},
}

// FormatPrice convertit un montant de base (roupies) vers la devise du pays
// et le concatène au symbole, arrondi à l'entier. Pays inconnu → mapping Inde.
func FormatPrice(amount float64, countryCode string) string {
	rate, ok := currencyRates[countryCode]
	if !ok {
		rate = currencyRates["IN"]
	}
	converted := int(math.Round(amount * rate.Multiplier))
	return rate.Symbol + strconv.Itoa(converted)
}
