package mechanism

import (
	"sort"

	"github.com/oehrl/arbor/internal/catalogue"
	"github.com/oehrl/arbor/internal/cellerr"
	"github.com/oehrl/arbor/internal/phys"
)

// IonUsage is the set of CVs where some mechanism reads or writes an
// ion species, aggregated across every non-revpot mechanism config.
// CVFrac records, for each such CV, the largest area fraction any one
// mechanism instance using the ion there actually covers — 1.0 for a
// point/gap-junction instance (which owns its whole target site), or a
// density mechanism's own per-CV NormArea when the painting does not
// cover the CV's full membrane area.
type IonUsage struct {
	ReadCVs  map[int]bool
	WriteCVs map[int]bool
	CVFrac   map[int]float64
}

// CollectIonUsage walks every mechanism config's catalogue-declared
// ion dependencies and records, per ion, which of the mechanism's CVs
// read or write it, and the covering area fraction at each. Reversal-
// potential configs are excluded — a revpot mechanism's own
// reads/writes are resolved separately by internal/revpot, which needs
// to distinguish "read by some *other* mechanism" from a revpot writer
// reading its own output.
func CollectIonUsage(cfgs map[string]MechanismConfig, cat catalogue.Catalogue) map[string]*IonUsage {
	usage := make(map[string]*IonUsage)
	get := func(ion string) *IonUsage {
		u, ok := usage[ion]
		if !ok {
			u = &IonUsage{ReadCVs: make(map[int]bool), WriteCVs: make(map[int]bool), CVFrac: make(map[int]float64)}
			usage[ion] = u
		}
		return u
	}

	record := func(u *IonUsage, cfg MechanismConfig) {
		for i, cv := range cfg.CV {
			frac := 1.0
			if cfg.Kind == catalogue.Density && i < len(cfg.NormArea) {
				frac = cfg.NormArea[i]
			}
			if frac > u.CVFrac[cv] {
				u.CVFrac[cv] = frac
			}
		}
	}

	for name, cfg := range cfgs {
		if cfg.Kind == catalogue.ReversalPotential {
			continue
		}
		for _, ion := range cat.IonsRead(name) {
			u := get(ion)
			for _, cv := range cfg.CV {
				u.ReadCVs[cv] = true
			}
			record(u, cfg)
		}
		for _, ion := range cat.IonsWrite(name) {
			u := get(ion)
			for _, cv := range cfg.CV {
				u.WriteCVs[cv] = true
			}
			record(u, cfg)
		}
	}
	return usage
}

// ValidateIonCharges checks that every ion a mechanism writes is
// present in the global species table with a defined charge, and that
// any charge the mechanism itself declares for that ion agrees with
// the species table.
func ValidateIonCharges(cfgs map[string]MechanismConfig, cat catalogue.Catalogue, species map[string]phys.IonDefault) error {
	names := make([]string, 0, len(cfgs))
	for name := range cfgs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cfg := cfgs[name]
		if cfg.Kind == catalogue.ReversalPotential {
			continue
		}
		for _, ion := range cat.IonsWrite(name) {
			sp, ok := species[ion]
			if !ok {
				return cellerr.New(cellerr.MissingIon, "mechanism writes ion absent from species table",
					cellerr.WithMechanism(name), cellerr.WithParameter(ion))
			}
			if declared, has := cat.IonCharge(name, ion); has && declared != sp.Charge {
				return cellerr.New(cellerr.IonChargeMismatch, "mechanism-declared ion charge disagrees with species table",
					cellerr.WithMechanism(name), cellerr.WithParameter(ion))
			}
		}
	}
	return nil
}

// BuildIonConfigs assembles one IonConfig per ion with recorded usage,
// with CVs sorted ascending. init_econc is uniform at the species
// default; init_iconc is area-weighted by usage.CVFrac, since a
// mechanism that only partially covers a CV's membrane only contributes
// its ion to that covered fraction. The species defaults are taken from
// species as given; no per-cell override is applied here.
func BuildIonConfigs(usage map[string]*IonUsage, species map[string]phys.IonDefault) map[string]IonConfig {
	out := make(map[string]IonConfig, len(usage))
	for ion, u := range usage {
		cvSet := make(map[int]bool, len(u.ReadCVs)+len(u.WriteCVs))
		for cv := range u.ReadCVs {
			cvSet[cv] = true
		}
		for cv := range u.WriteCVs {
			cvSet[cv] = true
		}
		cvs := make([]int, 0, len(cvSet))
		for cv := range cvSet {
			cvs = append(cvs, cv)
		}
		sort.Ints(cvs)

		sp := species[ion]
		iconc := make([]float64, len(cvs))
		econc := make([]float64, len(cvs))
		for i, cv := range cvs {
			frac, ok := u.CVFrac[cv]
			if !ok {
				frac = 1.0
			}
			iconc[i] = sp.InitIConc * frac
			econc[i] = sp.InitEConc
		}
		out[ion] = IonConfig{CV: cvs, InitIConc: iconc, InitEConc: econc, Charge: sp.Charge}
	}
	return out
}
