package domain

import (
	"fmt"
	"math"
	"strings"
)

// WeightUnit is a unit of body weight.
type WeightUnit string

// HeightUnit is a unit of body height.
type HeightUnit string

const (
	UnitKG  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"

	UnitCM HeightUnit = "cm"
	UnitIn HeightUnit = "in"
)

const (
	kgToLb = 2.2046226218
	inToCM = 2.54
)

// ParseWeightUnit normalises user input into a WeightUnit. "lb" is accepted as
// an alias of "lbs".
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg":
		return UnitKG, nil
	case "lb", "lbs":
		return UnitLbs, nil
	}
	return "", fmt.Errorf("unit must be \"kg\" or \"lbs\", got %q", s)
}

// Valid reports whether u is a known weight unit.
func (u WeightUnit) Valid() bool {
	return u == UnitKG || u == UnitLbs
}

// ConvertWeight converts a weight value between kg and lbs.
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to WeightUnit) float64 {
	if from == to {
		return v
	}
	if from == UnitKG && to == UnitLbs {
		return v * kgToLb
	}
	if from == UnitLbs && to == UnitKG {
		return v / kgToLb
	}
	return v
}

// ConvertHeight converts a height value between cm and inches.
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertHeight(v float64, from, to HeightUnit) float64 {
	if from == to {
		return v
	}
	if from == UnitIn && to == UnitCM {
		return v * inToCM
	}
	if from == UnitCM && to == UnitIn {
		return v / inToCM
	}
	return v
}

// FeetInchesToCM converts an imperial height such as 5'11" into centimetres.
func FeetInchesToCM(feet, inches float64) float64 {
	return ConvertHeight(feet*12+inches, UnitIn, UnitCM)
}

// CMToFeetInches splits a centimetre height into whole feet and the remaining
// inches, rounded to one decimal.
func CMToFeetInches(cm float64) (feet int, inches float64) {
	total := ConvertHeight(cm, UnitCM, UnitIn)
	feet = int(total / 12)
	inches = math.Round((total-float64(feet)*12)*10) / 10
	if inches >= 12 {
		feet++
		inches -= 12
	}
	return feet, inches
}
