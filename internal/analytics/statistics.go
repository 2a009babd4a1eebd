package analytics

import "math"

// Pearson computes the Pearson correlation coefficient over two
// equal-length series. ok is false when there are fewer than 2 points,
// the lengths differ, or either series has zero variance, so the result
// is never NaN.
func Pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0, false
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}

// LogReturns converts a price series into log returns. Non-positive and
// non-finite prices break the chain and are skipped.
func LogReturns(prices []float64) []float64 {
	var out []float64
	for i := 1; i < len(prices); i++ {
		if !usablePrice(prices[i-1]) || !usablePrice(prices[i]) {
			continue
		}
		out = append(out, math.Log(prices[i]/prices[i-1]))
	}
	return out
}

func usablePrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 1)
}

// StdDev returns the sample standard deviation, 0 for fewer than two
// points.
func StdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(n)
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// Volatility is the sample standard deviation of log returns, the
// volatility proxy used by the market stats.
func Volatility(prices []float64) float64 {
	return StdDev(LogReturns(prices))
}

// Mean returns the arithmetic mean, 0 for an empty series.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
