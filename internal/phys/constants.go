package phys

import "math"

// Physical and default biophysical constants for the cable equation.
//
// Faraday's constant and the gas constant are used by the default
// reversal-potential method (Nernst equation); the remaining constants
// are the catalogue-wide defaults a painting may override per-region.
const (
	Faraday      = 96485.33212 // C/mol
	GasConstant  = 8.3144626   // J/(mol*K)
	KelvinOffset = 273.15

	// DefaultCm is membrane capacitance per unit area in F/m^2;
	// Defaults.CmNanoFaradPerUm2 returns it converted to nF/um^2.
	DefaultCm = 0.01 // F/m^2

	// DefaultRa is axial resistivity, Ohm*cm.
	DefaultRa = 100.0

	DefaultVm          = -65.0 // mV
	DefaultTemperatureC = 6.3  // degrees C, classic squid-axon default
)

// Defaults holds the cell-wide parameter values used where no painting
// overrides them. A painting may set a narrower default (per-cell), and
// a branch-scoped painting may narrow it further (per-segment); Resolve
// implements the three-level fallback, which fvm.Discretize applies to
// Cm and Ra.
type Defaults struct {
	CmFaradPerM2  float64
	RaOhmCm       float64
	VmMillivolt   float64
	TemperatureC  float64
	IonDefaults   map[string]IonDefault
}

// IonDefault is the catalogue-wide default concentration pair and charge
// for one ion species, analogous to a row of a load-combination table:
// a small named record looked up by species name.
type IonDefault struct {
	Charge       int
	InitIConc    float64 // mM, internal
	InitEConc    float64 // mM, external
}

// StandardIonDefaults returns the conventional default species table
// (sodium, potassium, calcium, chloride) used when a recipe does not
// override a species' concentrations.
func StandardIonDefaults() map[string]IonDefault {
	return map[string]IonDefault{
		"na": {Charge: 1, InitIConc: 10, InitEConc: 140},
		"k":  {Charge: 1, InitIConc: 54.4, InitEConc: 2.5},
		"ca": {Charge: 2, InitIConc: 5e-5, InitEConc: 2},
		"cl": {Charge: -1, InitIConc: 4, InitEConc: 110},
	}
}

// NewDefaults constructs the standard set of cell-wide defaults.
func NewDefaults() Defaults {
	return Defaults{
		CmFaradPerM2: DefaultCm,
		RaOhmCm:      DefaultRa,
		VmMillivolt:  DefaultVm,
		TemperatureC: DefaultTemperatureC,
		IonDefaults:  StandardIonDefaults(),
	}
}

// CmNanoFaradPerUm2 converts the membrane capacitance to nF/um^2, the
// unit cv_capacitance is expressed in (area in um^2 times this factor).
// 1 F/m^2 = 1e9 nF / 1e12 um^2 = 1e-3 nF/um^2.
func (d Defaults) CmNanoFaradPerUm2() float64 {
	return d.CmFaradPerM2 * 1e-3
}

// TemperatureKelvin returns the configured temperature in Kelvin.
func (d Defaults) TemperatureKelvin() float64 {
	return d.TemperatureC + KelvinOffset
}

// NernstPotential computes the reversal potential (mV) for an ion of
// the given charge at the given temperature from its internal/external
// concentrations, via the Nernst equation:
//
//	E = (R*T)/(z*F) * ln(cOut/cIn)
//
// returned in millivolts.
func NernstPotential(charge int, temperatureK, cIn, cOut float64) float64 {
	if charge == 0 || cIn <= 0 || cOut <= 0 {
		return 0
	}
	rtzf := (GasConstant * temperatureK) / (float64(charge) * Faraday)
	return 1000 * rtzf * math.Log(cOut/cIn)
}
