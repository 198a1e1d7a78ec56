package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una entrada (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentStock, currentCost, qtyIn, costIn decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(qtyIn)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if currentStock.LessThanOrEqual(decimal.Zero) {
		return costIn.Round(CostPrecision)
	}
	num := currentStock.Mul(currentCost).Add(qtyIn.Mul(costIn))
	return num.Div(sum).Round(CostPrecision)
}
