package valuation

import "fmt"

// Method is a valuation methodology.
type Method string

const (
	MethodComparative Method = "comparative"
	MethodCost        Method = "cost"
	MethodIncome      Method = "income"
)

// ParseMethod validates a method identifier.
func ParseMethod(value string) (Method, error) {
	switch Method(value) {
	case MethodComparative, MethodCost, MethodIncome:
		return Method(value), nil
	default:
		return "", fmt.Errorf("valuation: unknown method %q", value)
	}
}

// MethodSelection is the ordered set of methods applicable to a property
// type, with the rationale reported to the appraiser.
type MethodSelection struct {
	Methods   []Method
	Rationale string
}

// Applies reports whether a method is part of the selection.
func (s MethodSelection) Applies(method Method) bool {
	for _, m := range s.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// SelectMethods resolves the method policy for a property type. The policy is
// total over the four known types; anything else is an explicit error.
func SelectMethods(propertyType PropertyType) (MethodSelection, error) {
	switch propertyType {
	case PropertyUrban:
		return MethodSelection{
			Methods:   []Method{MethodComparative, MethodCost},
			Rationale: "comparative preferred, cost as control",
		}, nil
	case PropertyRustic:
		return MethodSelection{
			Methods:   []Method{MethodIncome, MethodComparative},
			Rationale: "income/production value is standard",
		}, nil
	case PropertyMixed:
		return MethodSelection{
			Methods:   []Method{MethodComparative, MethodCost, MethodIncome},
			Rationale: "requires split urban/rustic analysis",
		}, nil
	case PropertyGravePlot:
		return MethodSelection{
			Methods:   []Method{MethodCost, MethodComparative},
			Rationale: "cost approach governs special-use plots",
		}, nil
	default:
		return MethodSelection{}, fmt.Errorf("%w: %q", ErrUnknownPropertyType, propertyType)
	}
}
