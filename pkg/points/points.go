package points

import "github.com/shopspring/decimal"

// BaseRate is the number of points earned per dollar spent on a purchase.
const BaseRate = 4

// Calc returns ceil(spent * rate) points.
func Calc(spent, rate decimal.Decimal) int {
	return int(spent.Mul(rate).Ceil().IntPart())
}

func CalcBase(spent decimal.Decimal) int {
	return Calc(spent, decimal.NewFromInt(BaseRate))
}
