package currency

import (
	"fmt"
	"strings"
)

// Slot is one leg of the conversion the user has selected a currency for.
type Slot string

const (
	Primary   Slot = "primary"
	Secondary Slot = "secondary"
)

var Slots = []Slot{Primary, Secondary}

func ConvertToSlotFromString(str string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "primary":
		return Primary, nil
	case "secondary":
		return Secondary, nil
	}

	return "", fmt.Errorf("value %s is not valid Slot", str)
}

// Key is the storage key the slot's currency code is kept under.
func (s Slot) Key() string {
	return string(s) + "Currency"
}

// DefaultCode is used until the user picks a currency for the slot.
func (s Slot) DefaultCode() string {
	if s == Secondary {
		return "PHP"
	}

	return "USD"
}
