package wizardbook

import (
	"math"
	"sort"

	"github.com/Sayshal/spell-book/internal/clients/vtt"
	apperr "github.com/Sayshal/spell-book/internal/errors"
)

// denomination order: base first, then ascending conversion factor
func orderedDenominations(config []vtt.CurrencyDenomination) []vtt.CurrencyDenomination {
	ordered := make([]vtt.CurrencyDenomination, len(config))
	copy(ordered, config)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ConversionFactor == 1 {
			return ordered[j].ConversionFactor != 1
		}
		if ordered[j].ConversionFactor == 1 {
			return false
		}
		return ordered[i].ConversionFactor < ordered[j].ConversionFactor
	})
	return ordered
}

// Wealth computes total wealth in base units across all denominations
func Wealth(currency map[string]int, config []vtt.CurrencyDenomination) float64 {
	var total float64
	for _, denom := range config {
		if denom.ConversionFactor == 0 {
			continue
		}
		total += float64(currency[denom.Abbreviation]) / denom.ConversionFactor
	}
	return total
}

// Deduct removes cost base units from the given amounts, deducting
// greedily: base denomination first, then the others by ascending
// conversion factor. Within each denomination it takes the ceiling of
// the remaining cost in that denomination's units, capped by what the
// actor holds. The returned map is a fresh copy; the input is never
// mutated. Insufficient total wealth refuses without any change.
func Deduct(cost int, currency map[string]int, config []vtt.CurrencyDenomination) (map[string]int, error) {
	if cost < 0 {
		return nil, apperr.InvalidArgument("cost cannot be negative")
	}

	updated := make(map[string]int, len(currency))
	for denom, amount := range currency {
		updated[denom] = amount
	}
	if cost == 0 {
		return updated, nil
	}

	if Wealth(currency, config) < float64(cost) {
		return nil, apperr.InsufficientFundsf("need %d in base currency", cost).
			WithMeta("cost", cost)
	}

	remaining := float64(cost)
	for _, denom := range orderedDenominations(config) {
		if remaining <= 1e-9 {
			break
		}
		if denom.ConversionFactor == 0 {
			continue
		}

		available := updated[denom.Abbreviation]
		if available <= 0 {
			continue
		}

		baseValuePerUnit := 1 / denom.ConversionFactor
		units := int(math.Ceil(remaining / baseValuePerUnit))
		if units > available {
			units = available
		}

		updated[denom.Abbreviation] = available - units
		remaining -= float64(units) * baseValuePerUnit
	}

	if remaining > 1e-9 {
		// The wealth check passed, so the ladder should always cover
		// the cost; reaching here means the config is inconsistent.
		return nil, apperr.InsufficientFundsf("denominations could not cover %d", cost)
	}

	return updated, nil
}

// CanAfford reports whether the amounts cover cost base units
func CanAfford(cost int, currency map[string]int, config []vtt.CurrencyDenomination) bool {
	return Wealth(currency, config) >= float64(cost)
}
