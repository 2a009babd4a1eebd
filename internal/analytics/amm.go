package analytics

import "math"

// PriceImpact computes the constant-product price impact, in percent, of
// a hypothetical trade of tradeIn against reserves (reserveIn,
// reserveOut). The result is negative for a buy (price of the output
// token in input units falls from the trader's perspective) and 0 for
// non-finite or non-positive inputs.
func PriceImpact(tradeIn, reserveIn, reserveOut float64) float64 {
	if !finite(tradeIn) || !finite(reserveIn) || !finite(reserveOut) {
		return 0
	}
	if tradeIn <= 0 || reserveIn <= 0 || reserveOut <= 0 {
		return 0
	}
	k := reserveIn * reserveOut
	newReserveIn := reserveIn + tradeIn
	newReserveOut := k / newReserveIn

	priceBefore := reserveOut / reserveIn
	priceAfter := newReserveOut / newReserveIn
	return (priceAfter - priceBefore) / priceBefore * 100
}

// EffectivePrice returns the average exchange rate actually paid for a
// constant-product trade of tradeIn, i.e. output received per input unit.
func EffectivePrice(tradeIn, reserveIn, reserveOut float64) float64 {
	if tradeIn <= 0 || reserveIn <= 0 || reserveOut <= 0 {
		return 0
	}
	k := reserveIn * reserveOut
	out := reserveOut - k/(reserveIn+tradeIn)
	return out / tradeIn
}

// DepthForImpact returns the trade size that moves the pool price by
// targetPct percent. Closed form of the constant-product relation:
// (reserveIn / (reserveIn + x))^2 = 1 - targetPct/100.
func DepthForImpact(targetPct, reserveIn float64) float64 {
	if targetPct <= 0 || targetPct >= 100 || reserveIn <= 0 {
		return 0
	}
	return reserveIn * (1/math.Sqrt(1-targetPct/100) - 1)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
