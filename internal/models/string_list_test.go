package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	empty, err := StringList{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	v, err := StringList{"gluten", "lactose"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["gluten","lactose"]`, string(v.([]byte)))
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	require.NoError(t, l.Scan([]byte(`["gluten"]`)))
	assert.Equal(t, StringList{"gluten"}, l)

	// sqlite hands the column back as a string
	require.NoError(t, l.Scan(`["egg","gluten"]`))
	assert.Equal(t, StringList{"egg", "gluten"}, l)
}
