package valuation

import "fmt"

// PropertyType classifies a property for method selection.
type PropertyType string

const (
	PropertyUrban     PropertyType = "urban"
	PropertyRustic    PropertyType = "rustic"
	PropertyMixed     PropertyType = "mixed"
	PropertyGravePlot PropertyType = "grave_plot"
)

// ParsePropertyType validates a property type string.
func ParsePropertyType(value string) (PropertyType, error) {
	switch PropertyType(value) {
	case PropertyUrban, PropertyRustic, PropertyMixed, PropertyGravePlot:
		return PropertyType(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPropertyType, value)
	}
}

// PropertyRecord identifies the property under appraisal.
type PropertyRecord struct {
	ArticleID        string
	Type             PropertyType
	GrossArea        float64
	UsableArea       float64
	ConstructionYear int
	Typology         string
}

// AreaTolerance is the maximum accepted ratio of usable to gross area.
// Measured usable area above gross area by more than 15% points to a
// measurement or registry error and blocks the appraisal.
const AreaTolerance = 1.15

// ValidateAreas gatekeeps the appraisal on area consistency.
// Exactly gross*1.15 is still accepted.
func ValidateAreas(grossArea, usableArea float64) error {
	if grossArea <= 0 {
		return fmt.Errorf("%w: gross area %.2f", ErrInvalidArea, grossArea)
	}
	if usableArea <= 0 {
		return fmt.Errorf("%w: usable area %.2f", ErrInvalidArea, usableArea)
	}
	if usableArea > grossArea*AreaTolerance {
		return fmt.Errorf("%w: usable area %.2f exceeds gross area %.2f by more than 15%%",
			ErrAreaInconsistency, usableArea, grossArea)
	}
	return nil
}

// Validate checks the record fields needed before any valuation runs.
func (p PropertyRecord) Validate() error {
	if _, err := ParsePropertyType(string(p.Type)); err != nil {
		return err
	}
	return ValidateAreas(p.GrossArea, p.UsableArea)
}
