package model

// BusinessType selects the default category set for a new project.
type BusinessType string

const (
	BusinessBarbershop BusinessType = "barbershop"
	BusinessSalon      BusinessType = "salon"
	BusinessWorkshop   BusinessType = "workshop"
	BusinessRetail     BusinessType = "retail"
	BusinessOther      BusinessType = "other"
)

// Valid reports whether b is a known business type.
func (b BusinessType) Valid() bool {
	switch b {
	case BusinessBarbershop, BusinessSalon, BusinessWorkshop, BusinessRetail, BusinessOther:
		return true
	}
	return false
}

// Category is a row in categories.csv.
type Category struct {
	Name       string
	Type       TxnType
	UsageCount int
	IsDefault  bool
}
