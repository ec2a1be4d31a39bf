package services

import "shopify-product-service/internal/models"

var weightUnits = map[string]models.WeightUnit{
	"lb": models.WeightUnitPounds,
	"oz": models.WeightUnitOunces,
	"kg": models.WeightUnitKilograms,
	"g":  models.WeightUnitGrams,
}

// NormalizeWeightUnit maps a NetSuite weight unit code to a Shopify unit.
// Unknown codes return nil.
func NormalizeWeightUnit(code string) *models.WeightUnit {
	unit, ok := weightUnits[code]
	if !ok {
		return nil
	}
	return &unit
}
