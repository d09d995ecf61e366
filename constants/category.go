package constants

import (
	"strings"
)

// BusinessType classifies a vendor (the Tipo_Negocio column).
type BusinessType string

const (
	Restaurant   BusinessType = "Restaurante"
	CoffeeShop   BusinessType = "Cafeteria"
	FastFood     BusinessType = "Comida Rapida"
	IceCreamShop BusinessType = "Heladeria"
	Kiosk        BusinessType = "Kiosco"
	Supermarket  BusinessType = "Supermercado"
	Pharmacy     BusinessType = "Farmacia"
	Bakery       BusinessType = "Panaderia"
	OtherType    BusinessType = "Otro"
)

var allBusinessTypes = []BusinessType{
	Restaurant,
	CoffeeShop,
	FastFood,
	IceCreamShop,
	Kiosk,
	Supermarket,
	Pharmacy,
	Bakery,
	OtherType,
}

// BusinessTypeStrings returns the taxonomy as plain strings, for schema enums.
func BusinessTypeStrings() []string {
	result := make([]string, len(allBusinessTypes))
	for i, bt := range allBusinessTypes {
		result[i] = string(bt)
	}
	return result
}

// CanonicalizeBusinessType maps free-form historical values onto the taxonomy.
// Returns (OtherType, false) when the input is empty or unrecognized.
func CanonicalizeBusinessType(input string) (BusinessType, bool) {
	if input == "" {
		return OtherType, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]BusinessType{
		"resto":          Restaurant,
		"restaurant":     Restaurant,
		"parrilla":       Restaurant,
		"cafe":           CoffeeShop,
		"café":           CoffeeShop,
		"bar":            CoffeeShop,
		"hamburgueseria": FastFood,
		"pizzeria":       FastFood,
		"helados":        IceCreamShop,
		"drugstore":      Kiosk,
		"almacen":        Supermarket,
		"mercado":        Supermarket,
	}

	if bt, ok := synonyms[normalized]; ok {
		return bt, true
	}

	for _, bt := range allBusinessTypes {
		if normalized == strings.ToLower(string(bt)) {
			return bt, true
		}
	}

	return OtherType, false
}
