package catalogue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticAddAndQuery(t *testing.T) {
	cat := NewStatic()
	require.False(t, cat.Has("hh"))

	cat.Add("hh", Density, map[string]ParamMeta{
		"gnabar": {Default: 0.12, Min: 0, Max: 1, HasRange: true},
	}, []string{"na"}, []string{"na"}, false)
	cat.AddIonCharge("hh", "na", 1)

	require.True(t, cat.Has("hh"))
	require.Equal(t, Density, cat.Kind("hh"))
	require.Equal(t, []string{"na"}, cat.IonsRead("hh"))
	require.Equal(t, []string{"na"}, cat.IonsWrite("hh"))
	require.False(t, cat.IsLinear("hh"))
	require.InDelta(t, 0.12, cat.Parameters("hh")["gnabar"].Default, 1e-12)

	charge, ok := cat.IonCharge("hh", "na")
	require.True(t, ok)
	require.Equal(t, 1, charge)

	_, ok = cat.IonCharge("hh", "k")
	require.False(t, ok)
}

func TestMechKindString(t *testing.T) {
	require.Equal(t, "density", Density.String())
	require.Equal(t, "point", Point.String())
	require.Equal(t, "gap_junction", GapJunction.String())
	require.Equal(t, "reversal_potential", ReversalPotential.String())
}
