package currency_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-rates"
)

func TestConvertToSlotFromString(t *testing.T) {
	assert := require.New(t)
	values := []struct {
		value    string
		expected interface{}
		err      error
	}{
		{"primary", currency.Primary, nil},
		{"Secondary", currency.Secondary, nil},
		{"", currency.Slot(""), errors.New("value  is not valid Slot")},
		{"left", currency.Slot(""), errors.New("value left is not valid Slot")},
	}

	for _, value := range values {
		slot, err := currency.ConvertToSlotFromString(value.value)
		assert.Equal(value.expected, slot)
		assert.Equal(value.err, err)
	}
}

func TestSlot_Key(t *testing.T) {
	assert := require.New(t)

	assert.Equal("primaryCurrency", currency.Primary.Key())
	assert.Equal("secondaryCurrency", currency.Secondary.Key())
	assert.Equal("USD", currency.Primary.DefaultCode())
	assert.Equal("PHP", currency.Secondary.DefaultCode())
}
