package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceProfileLookup(t *testing.T) {
	p := BuiltInPriceProfiles()[0]

	c, ok := p.Lookup("VIP")
	require.True(t, ok)
	assert.Equal(t, 120.0, c.Price)

	_, ok = p.Lookup("box")
	assert.False(t, ok)
}

func TestPriceProfileValidate(t *testing.T) {
	for _, p := range BuiltInPriceProfiles() {
		assert.NoError(t, p.Validate(), p.Name)
		assert.True(t, p.IsBuiltIn)
	}

	assert.Error(t, PriceProfile{}.Validate())
	assert.Error(t, PriceProfile{
		Name:       "bad",
		Categories: []CategoryPrice{{Category: "vip", Price: -1}},
	}.Validate())
	assert.Error(t, PriceProfile{
		Name:       "bad",
		Categories: []CategoryPrice{{Price: 10}},
	}.Validate())
}
