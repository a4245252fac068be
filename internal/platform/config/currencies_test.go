package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCurrencyDefinitions(t *testing.T) {
	defs, err := LoadCurrencyDefinitions("testdata/currencies.yaml")
	require.NoError(t, err)
	require.Len(t, defs, 2)

	gold := defs[0]
	assert.Equal(t, "gold", gold.ID)
	assert.Equal(t, "G", gold.Symbol)
	assert.Equal(t, int32(2), gold.Precision)
	assert.Equal(t, "100", gold.StartingBalance)
	assert.True(t, gold.Primary)
	require.Len(t, gold.Names, 2)
	assert.Equal(t, "Goldmünzen", gold.Names[1].Plural)

	assert.Equal(t, "0.3", defs[1].ConversionRate)
	assert.False(t, defs[1].Primary)
}

func TestLoadCurrencyDefinitions_Failures(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: "testdata/absent.yaml"},
		{name: "invalid fields", path: "testdata/invalid.json"},
		{name: "two primaries", path: "testdata/two_primaries.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCurrencyDefinitions(tt.path)
			assert.Error(t, err)
		})
	}
}
