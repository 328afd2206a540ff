package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_RoundTrip(t *testing.T) {
	c := New()
	if !c.Available() {
		err := c.WriteText("x")
		assert.ErrorIs(t, err, ErrUnsupported)
		t.Skip("no clipboard utility on this system")
	}

	if err := c.WriteText("https://pay.example.com/inv"); err != nil {
		t.Skipf("clipboard present but not usable: %v", err)
	}
	got, err := c.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/inv", got)
}
