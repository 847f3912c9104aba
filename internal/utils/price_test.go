package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount  float64
		country string
		want    string
	}{
		{1000, "IN", "₹1000"},
		{1000, "US", "$13"},
		{1000, "EU", "€12"},
		{1000, "AE", "د.إ48"},
		{1000, "XX", "₹1000"}, // pays inconnu → mapping Inde
		{1000, "", "₹1000"},
		{0, "US", "$0"},
		{4500, "US", "$59"}, // 58.5 arrondi à l'entier supérieur
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.amount, tc.country), "FormatPrice(%v, %q)", tc.amount, tc.country)
	}
}
