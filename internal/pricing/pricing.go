package pricing

import (
	"math"

	"gemstore/internal/models"
)

// Base prices per gem type. Unknown types fall back to the diamond base.
const (
	baseDiamond = 1000
	baseRuby    = 400
	baseEmerald = 650
)

// colorMultipliers scale diamond prices only; ruby and emerald color is
// not priced.
var colorMultipliers = map[models.GemColor]float64{
	models.ColorD: 1.8,
	models.ColorE: 1.6,
	models.ColorG: 1.4,
	models.ColorF: 1.2,
	models.ColorH: 1.0,
	models.ColorI: 0.8,
}

// ComputePrice derives a gem's price from its type and physical grading.
// It is pure and never fails: base price by type, clarity multiplier,
// cubic size scaling, and for diamonds a color multiplier (1.0 when the
// color is unset or unknown). The result is rounded to 2 decimal places;
// this is the single rounding policy for every pricing path.
func ComputePrice(gemType models.GemType, props models.GemProperties) float64 {
	price := float64(baseDiamond)
	switch gemType {
	case models.GemTypeRuby:
		price = baseRuby
	case models.GemTypeEmerald:
		price = baseEmerald
	}

	if props.Clarity != nil {
		switch *props.Clarity {
		case models.ClaritySI:
			price *= 0.75
		case models.ClarityVVS:
			price *= 1.25
		case models.ClarityFL:
			price *= 1.5
		}
	}

	// Volume-driven value scaling.
	price *= math.Pow(props.Size, 3)

	if gemType == models.GemTypeDiamond {
		multiplier := 1.0
		if props.Color != nil {
			if m, ok := colorMultipliers[*props.Color]; ok {
				multiplier = m
			}
		}
		price *= multiplier
	}

	return math.Round(price*100) / 100
}
