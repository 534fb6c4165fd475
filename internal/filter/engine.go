// Package filter narrows a listing table to the rows matching a FilterSpec.
package filter

import (
	"github.com/priceboard/priceboard/internal/errors"
	"github.com/priceboard/priceboard/pkg/types"
)

// Apply returns the subset of table satisfying every active predicate of
// spec. Predicates are AND-combined; row identity and order are preserved.
// The input table is never mutated, and an empty result is a value, not an
// error.
//
// Multi-select sets follow the FilterSpec contract: a nil set leaves the
// dimension unconstrained, a non-nil empty set is an explicit empty
// selection and matches no rows.
func Apply(table types.Table, spec types.FilterSpec) types.Table {
	brands := stringSet(spec.Brands)
	marketplaces := stringSet(spec.Marketplaces)
	ramSizes := intSet(spec.RAMSizes)
	storageSizes := intSet(spec.StorageCapacities)

	out := make(types.Table, 0, len(table))
	for _, l := range table {
		if !spec.AllCities() && l.City != spec.City {
			continue
		}
		if !brands.allows(l.Brand) {
			continue
		}
		if spec.PriceRange != nil && !spec.PriceRange.Contains(l.Price) {
			continue
		}
		if !marketplaces.allows(l.Marketplace) {
			continue
		}
		if !ramSizes.allows(l.RAMSize) {
			continue
		}
		if !storageSizes.allows(l.StorageCapacity) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// ValidateSpec rejects specs no table could answer meaningfully.
func ValidateSpec(spec types.FilterSpec) error {
	if spec.PriceRange != nil && spec.PriceRange.Low > spec.PriceRange.High {
		return errors.NewValidationError(errors.CodeInvalidFilter,
			"price range low bound exceeds high bound")
	}
	return nil
}

// membership distinguishes "unconstrained" (nil source slice) from an
// explicit selection set.
type membership[T comparable] struct {
	constrained bool
	values      map[T]struct{}
}

func (m membership[T]) allows(v T) bool {
	if !m.constrained {
		return true
	}
	_, ok := m.values[v]
	return ok
}

func stringSet(values []string) membership[string] {
	return newMembership(values)
}

func intSet(values []int) membership[int] {
	return newMembership(values)
}

func newMembership[T comparable](values []T) membership[T] {
	if values == nil {
		return membership[T]{}
	}
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return membership[T]{constrained: true, values: set}
}
