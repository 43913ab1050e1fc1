package combobox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var greek = []Option{{Value: 1, Label: "Alpha"}, {Value: 2, Label: "Beta"}}

func TestFilterMatchesLabelCaseInsensitive(t *testing.T) {
	assert.Equal(t, []Option{{Value: 1, Label: "Alpha"}}, Filter(greek, "al"))
	assert.Equal(t, []Option{{Value: 2, Label: "Beta"}}, Filter(greek, "BET"))
}

func TestFilterMatchesStringifiedValue(t *testing.T) {
	opts := []Option{{Value: 101, Label: "Acme"}, {Value: 202, Label: "Globex"}}
	assert.Equal(t, []Option{{Value: 202, Label: "Globex"}}, Filter(opts, "20"))
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	assert.Equal(t, greek, Filter(greek, ""))
	assert.Equal(t, greek, Filter(greek, "   "))
	assert.Empty(t, Filter(greek, "zeta"))
}

func TestChooseConvertsAndClearsSearch(t *testing.T) {
	c := New(greek, 0)
	_, ok := c.Selected()
	assert.False(t, ok)

	c.Type("be")
	require.Equal(t, []Option{{Value: 2, Label: "Beta"}}, c.Visible())

	require.NoError(t, c.Choose("2"))
	v, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)
	assert.Empty(t, c.Query())
	assert.Equal(t, "Beta", c.SelectedLabel())
	assert.Equal(t, greek, c.Visible())
}

func TestChooseRejectsNonNumeric(t *testing.T) {
	c := New(greek, 1)
	c.Type("a")
	assert.Error(t, c.Choose("abc"))
	v, _ := c.Selected()
	assert.Equal(t, int64(1), v)
	assert.Equal(t, "a", c.Query())
}
