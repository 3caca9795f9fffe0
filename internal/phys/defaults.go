package phys

// Override carries a scalar membrane-property painting: Cm, Ra, Vm or
// temperature, narrowed to a region by the caller before it reaches
// here. Name is one of "cm", "ra", "vm", "celsius".
type Override struct {
	Name  string
	Value float64
}

// Resolve applies a three-level fallback — region override, then
// cell-wide override, then the global default — returning the value
// that should apply. cellWide and regionScoped may be nil/absent
// (ok=false) when no painting narrowed that level.
func Resolve(global Defaults, cellWide map[string]float64, regionScoped map[string]float64, name string) float64 {
	if v, ok := regionScoped[name]; ok {
		return v
	}
	if v, ok := cellWide[name]; ok {
		return v
	}
	switch name {
	case "cm":
		return global.CmFaradPerM2
	case "ra":
		return global.RaOhmCm
	case "vm":
		return global.VmMillivolt
	case "celsius":
		return global.TemperatureC
	default:
		return 0
	}
}

// IonDefaultFor resolves the ion default table for a species, falling
// back to the global species table when the cell does not override it.
func IonDefaultFor(global Defaults, cellOverrides map[string]IonDefault, ion string) (IonDefault, bool) {
	if d, ok := cellOverrides[ion]; ok {
		return d, true
	}
	d, ok := global.IonDefaults[ion]
	return d, ok
}
