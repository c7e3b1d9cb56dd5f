package valuation

import "errors"

var (
	// ErrAreaInconsistency is returned when usable area exceeds the gross area tolerance.
	ErrAreaInconsistency = errors.New("valuation: area inconsistency")
	// ErrInvalidArea is returned when an area is zero or negative.
	ErrInvalidArea = errors.New("valuation: invalid area")
	// ErrInvalidRating is returned when a condition rating is outside [1,5].
	ErrInvalidRating = errors.New("valuation: invalid condition rating")
	// ErrInvalidAge is returned when the property age is negative.
	ErrInvalidAge = errors.New("valuation: invalid age")
	// ErrInvalidUsefulLife is returned when the useful life is zero or negative.
	ErrInvalidUsefulLife = errors.New("valuation: invalid useful life")
	// ErrInvalidBasePrice is returned when the reference unit price is zero or negative.
	ErrInvalidBasePrice = errors.New("valuation: invalid base price")
	// ErrInvalidRent is returned when the monthly rent is negative.
	ErrInvalidRent = errors.New("valuation: invalid rent")
	// ErrInvalidYield is returned when the capitalization yield is zero or negative.
	ErrInvalidYield = errors.New("valuation: invalid yield")
	// ErrUnknownPropertyType is returned when a property type has no method policy.
	ErrUnknownPropertyType = errors.New("valuation: unknown property type")
	// ErrNoMethodResults is returned when a conclusion is built without any method result.
	ErrNoMethodResults = errors.New("valuation: no method results")
)
