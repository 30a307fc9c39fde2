package domain_test

import (
	"math"
	"testing"

	"wellness/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to domain.WeightUnit
		want     float64
	}{
		{"kg to lbs", 100.0, domain.UnitKG, domain.UnitLbs, 220.46226218},
		{"lbs to kg", 220.46226218, domain.UnitLbs, domain.UnitKG, 100.0},
		{"same unit kg", 80.0, domain.UnitKG, domain.UnitKG, 80.0},
		{"same unit lbs", 180.0, domain.UnitLbs, domain.UnitLbs, 180.0},
		{"unknown units", 50.0, "st", domain.UnitKG, 50.0},
		{"zero value", 0, domain.UnitKG, domain.UnitLbs, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v; want %v",
					tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestConvertWeight_DeltaIsUnitAgnostic(t *testing.T) {
	first, second := 80.0, 78.0

	convertedThenDiffed := domain.ConvertWeight(second, domain.UnitKG, domain.UnitLbs) -
		domain.ConvertWeight(first, domain.UnitKG, domain.UnitLbs)
	diffedThenConverted := domain.ConvertWeight(second-first, domain.UnitKG, domain.UnitLbs)

	if !almostEqual(convertedThenDiffed, diffedThenConverted, 0.01) {
		t.Fatalf("delta mismatch: %v vs %v", convertedThenDiffed, diffedThenConverted)
	}
	if !almostEqual(diffedThenConverted, -4.409, 0.01) {
		t.Fatalf("expected about -4.41 lbs, got %v", diffedThenConverted)
	}
}

func TestParseWeightUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.WeightUnit
		wantErr bool
	}{
		{"kg", domain.UnitKG, false},
		{"lb", domain.UnitLbs, false},
		{"LBS", domain.UnitLbs, false},
		{" kg ", domain.UnitKG, false},
		{"stone", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := domain.ParseWeightUnit(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestConvertHeight(t *testing.T) {
	if got := domain.ConvertHeight(70, domain.UnitIn, domain.UnitCM); !almostEqual(got, 177.8, 0.001) {
		t.Errorf("70in = %v cm, want 177.8", got)
	}
	if got := domain.ConvertHeight(254, domain.UnitCM, domain.UnitIn); !almostEqual(got, 100, 0.001) {
		t.Errorf("254cm = %v in, want 100", got)
	}
	if got := domain.FeetInchesToCM(5, 11); !almostEqual(got, 180.34, 0.001) {
		t.Errorf("5'11\" = %v cm, want 180.34", got)
	}
}

func TestCMToFeetInches(t *testing.T) {
	feet, inches := domain.CMToFeetInches(180.34)
	if feet != 5 || !almostEqual(inches, 11, 0.05) {
		t.Fatalf("got %d'%v\", want 5'11\"", feet, inches)
	}
	feet, inches = domain.CMToFeetInches(182.87)
	if feet != 6 || !almostEqual(inches, 0, 0.05) {
		t.Fatalf("got %d'%v\", want 6'0\"", feet, inches)
	}
}
