package service

import "math"

// MinDaysForCorrelation is the number of common calendar days required
// before a correlation is computed at all
const MinDaysForCorrelation = 3

// pearson computes the Pearson correlation coefficient of two equal-length
// series. Too few points or zero variance in either series yields 0.
func pearson(xValues, yValues []float64) float64 {
	n := len(xValues)
	if n != len(yValues) || n < MinDaysForCorrelation {
		return 0
	}

	meanX := mean(xValues)
	meanY := mean(yValues)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := xValues[i] - meanX
		dy := yValues[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0 // No variance, no correlation
	}

	return numerator / math.Sqrt(denomX*denomY)
}

// mean returns the arithmetic mean, 0 for an empty slice
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
