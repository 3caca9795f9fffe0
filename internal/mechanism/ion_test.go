package mechanism

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oehrl/arbor/internal/catalogue"
	"github.com/oehrl/arbor/internal/phys"
)

func caReadingCatalogue() *catalogue.Static {
	cat := catalogue.NewStatic()
	cat.Add("cad", catalogue.Density, map[string]catalogue.ParamMeta{
		"gcabar": {Default: 0.001},
	}, []string{"ca"}, nil, false)
	return cat
}

func TestBuildIonConfigsAreaWeightsInitIConcOnly(t *testing.T) {
	// A ca-reading density mechanism painted on only one of four
	// branches meeting at a shared CV covers a quarter of that CV's
	// area; init_iconc there must be scaled by that fraction while
	// init_econc stays at the uniform species default.
	cfgs := map[string]MechanismConfig{
		"cad": {
			Kind:     catalogue.Density,
			CV:       []int{1},
			NormArea: []float64{0.25},
		},
	}
	usage := CollectIonUsage(cfgs, caReadingCatalogue())

	species := map[string]phys.IonDefault{
		"ca": {Charge: 2, InitIConc: 5e-5, InitEConc: 2},
	}
	ions := BuildIonConfigs(usage, species)

	ca := ions["ca"]
	require.Equal(t, []int{1}, ca.CV)
	require.InDelta(t, 0.25*5e-5, ca.InitIConc[0], 1e-12)
	require.InDelta(t, 2, ca.InitEConc[0], 1e-12)
}

func TestBuildIonConfigsPointMechanismUsesFullFraction(t *testing.T) {
	// A point/gap-junction config carries no NormArea (the concept does
	// not apply to a single target site), so its CV's fraction is 1.
	cfgs := map[string]MechanismConfig{
		"gj": {Kind: catalogue.GapJunction, CV: []int{3}},
	}
	cat := catalogue.NewStatic()
	cat.Add("gj", catalogue.GapJunction, nil, []string{"na"}, nil, false)

	usage := CollectIonUsage(cfgs, cat)
	species := map[string]phys.IonDefault{"na": {Charge: 1, InitIConc: 10, InitEConc: 140}}
	ions := BuildIonConfigs(usage, species)

	require.InDelta(t, 10, ions["na"].InitIConc[0], 1e-12)
}
