// Package dice rolls reproducible dice on top of the deterministic random
// engine.
package dice

import (
	"math"

	"github.com/louisbranch/detrand/internal/random"
)

// RollDice rolls dice based on the provided request.
//
// # Determinism
//
// RollDice is deterministic with respect to the Seed field on Request.
// Given the same Seed and the same Dice slice (including order and values),
// RollDice will always produce the same Result on every platform.
//
// # Ordering
//
// Dice specs in Request.Dice are processed in slice order. The resulting
// Roll entries in Result.Rolls appear in the same order as the
// corresponding Spec entries in Request.Dice.
//
// # Errors
//
//   - At least one Spec must be provided in Request.Dice, otherwise
//     ErrMissingDice is returned.
//   - Each Spec must have Count in [1, MaxDiceCount] and Sides in
//     [1, MaxUint32], otherwise
//     ErrInvalidDiceSpec is returned.
//
// Example:
//
//	req := Request{
//	    Dice: []Spec{
//	        {Sides: 6, Count: 2}, // roll 2d6
//	        {Sides: 8, Count: 1}, // roll 1d8
//	    },
//	    Seed: 42,
//	}
//	result, err := RollDice(req)
func RollDice(request Request) (Result, error) {
	return RollWithRandom(random.New(request.Seed), request.Dice)
}

// RollWithRandom rolls dice using a provided random source, which lets
// callers share one stream across several requests.
func RollWithRandom(rng *random.Random, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}
	for _, spec := range specs {
		if !validSpec(spec) {
			return Result{}, ErrInvalidDiceSpec
		}
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0

	for _, spec := range specs {
		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(rng, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

func validSpec(spec Spec) bool {
	return spec.Count > 0 && spec.Count <= MaxDiceCount &&
		spec.Sides > 0 && uint64(spec.Sides) <= math.MaxUint32
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *random.Random, sides int) int {
	return int(rng.Uint32n(uint32(sides))) + 1
}
