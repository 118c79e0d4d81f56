package qcd

import (
	"math"
	"math/rand"
)

// TrialPT2 draws the next trial scale below pT2Max for an emission density
// coeff * dpT2/pT2 with constant coeff, the no-emission probability being
// (pT2/pT2Max)^coeff. coeff <= 0 returns 0.
func TrialPT2(rng *rand.Rand, pT2Max, coeff float64) float64 {
	if coeff <= 0 {
		return 0
	}
	return pT2Max * math.Pow(rng.Float64(), 1/coeff)
}

// TrialPT2Regularised draws from the density norm/(pT2+pT02)^2, as used for
// multiple interactions. Returns 0 when the draw falls below zero.
func TrialPT2Regularised(rng *rand.Rand, pT2Max, pT02, norm float64) float64 {
	if norm <= 0 {
		return 0
	}
	inv := 1/(pT2Max+pT02) - math.Log(rng.Float64())/norm
	pT2 := 1/inv - pT02
	if pT2 < 0 {
		return 0
	}
	return pT2
}

// Logit returns log(z/(1-z)), the integral of 1/(z(1-z)).
func Logit(z float64) float64 {
	return math.Log(z / (1 - z))
}

// SampleZLogit draws z in (zMin, zMax) from 1/(z(1-z)).
func SampleZLogit(rng *rand.Rand, zMin, zMax float64) float64 {
	u := Logit(zMin) + rng.Float64()*(Logit(zMax)-Logit(zMin))
	return 1 / (1 + math.Exp(-u))
}

// SampleZSoft draws z in (zMin, zMax) from 1/(1-z).
func SampleZSoft(rng *rand.Rand, zMin, zMax float64) float64 {
	r := rng.Float64()
	return 1 - (1-zMin)*math.Pow((1-zMax)/(1-zMin), r)
}

// SoftIntegral is the integral of 1/(1-z) over (zMin, zMax).
func SoftIntegral(zMin, zMax float64) float64 {
	return math.Log((1 - zMin) / (1 - zMax))
}
