// Package mechanism implements the mechanism layout builder: it groups
// per-cell paintings and placements by mechanism name, projects
// area-weighted parameters onto CVs, assigns stable target indices for
// point mechanisms, coalesces identical point instances when eligible,
// and validates ion dependencies against the catalogue.
package mechanism

import (
	"math"
	"sort"

	"github.com/oehrl/arbor/internal/catalogue"
	"github.com/oehrl/arbor/internal/cellerr"
	"github.com/oehrl/arbor/internal/region"
)

// MechanismConfig is the vectorized, ready-to-execute description of
// one mechanism's instances across every cell it touches.
type MechanismConfig struct {
	Kind         catalogue.MechKind
	CV           []int
	Target       []int
	Multiplicity []int
	ParamValues  map[string][]float64
	NormArea     []float64
}

// IonConfig is the vectorized ion state: the CVs where the ion
// participates, its initial concentrations there, and its charge.
type IonConfig struct {
	CV        []int
	InitIConc []float64
	InitEConc []float64
	Charge    int
}

// MechanismData is the layout builder's output: every mechanism
// config keyed by name, and every ion config keyed by species.
type MechanismData struct {
	Mechanisms map[string]MechanismConfig
	Ions       map[string]IonConfig
}

// densityPaint is one painting of a density mechanism, already
// resolved to the CVs it covers.
type densityPaint struct {
	cellIdx  int
	params   map[string]float64
	weighted []region.Weighted
}

// pointPlacement is one placement of a point, gap-junction, or
// detector/stimulus mechanism, already resolved to its owning CV.
type pointPlacement struct {
	cv     int
	target int
	params map[string]float64
}

// Builder accumulates paintings and placements across every cell of a
// compile, in submission order, and emits MechanismConfig/IonConfig
// once all cells have been processed.
type Builder struct {
	density map[string][]densityPaint
	point   map[string][]pointPlacement
	gap     map[string][]pointPlacement
	nextTarget    int // point-mechanism target counter
	nextGapTarget int // gap-junction target counter, independent of nextTarget
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		density: make(map[string][]densityPaint),
		point:   make(map[string][]pointPlacement),
		gap:     make(map[string][]pointPlacement),
	}
}

// AddDensity records one density-mechanism painting, already resolved
// to the CVs (and their area fractions) it covers within cellIdx.
func (b *Builder) AddDensity(cellIdx int, name string, params map[string]float64, weighted []region.Weighted) {
	b.density[name] = append(b.density[name], densityPaint{cellIdx: cellIdx, params: params, weighted: weighted})
}

// AddPoint records one point-mechanism placement at the given CV,
// returning the stable target index assigned to it (monotonically
// increasing across every AddPoint call in submission order, regardless
// of mechanism name; gap-junction sites are numbered separately by
// AddGapJunction).
func (b *Builder) AddPoint(name string, cv int, params map[string]float64) int {
	t := b.nextTarget
	b.nextTarget++
	b.point[name] = append(b.point[name], pointPlacement{cv: cv, target: t, params: params})
	return t
}

// AddGapJunction records one gap-junction site placement, returning its
// stable target index from its own counter: gap-junction sites and
// point mechanisms are two distinct target-index spaces, each
// contiguous from 0 over its own placements.
func (b *Builder) AddGapJunction(name string, cv int, params map[string]float64) int {
	t := b.nextGapTarget
	b.nextGapTarget++
	b.gap[name] = append(b.gap[name], pointPlacement{cv: cv, target: t, params: params})
	return t
}

// BuildDensity projects every accumulated density painting onto CVs:
// for each mechanism, the union of covered CVs is sorted ascending,
// each parameter's per-CV value is the area-weighted average across
// overlapping paintings with the catalogue default filling any
// uncovered fraction, and norm_area records the painted fraction.
func (b *Builder) BuildDensity(cat catalogue.Catalogue) (map[string]MechanismConfig, error) {
	out := make(map[string]MechanismConfig)
	for name, paints := range b.density {
		if !cat.Has(name) {
			return nil, cellerr.New(cellerr.UnknownMechanism, "unknown density mechanism", cellerr.WithMechanism(name))
		}

		paramMeta := cat.Parameters(name)
		cvFrac := make(map[int]float64)   // cv -> accumulated painted fraction
		cvParamSum := make(map[int]map[string]float64)
		for _, p := range paints {
			for pname, pval := range p.params {
				if meta, ok := paramMeta[pname]; ok && meta.HasRange && (pval < meta.Min || pval > meta.Max) {
					return nil, cellerr.New(cellerr.ParameterOutOfRange, "painted parameter value outside catalogue range",
						cellerr.WithCell(p.cellIdx), cellerr.WithMechanism(name), cellerr.WithParameter(pname))
				}
			}
			for _, w := range p.weighted {
				cvFrac[w.CV] += w.Fraction
				sums, ok := cvParamSum[w.CV]
				if !ok {
					sums = make(map[string]float64)
					cvParamSum[w.CV] = sums
				}
				for pname, meta := range paramMeta {
					pval, ok := p.params[pname]
					if !ok {
						pval = meta.Default
					}
					sums[pname] += pval * w.Fraction
				}
			}
		}

		cvs := make([]int, 0, len(cvFrac))
		for cv := range cvFrac {
			cvs = append(cvs, cv)
		}
		sort.Ints(cvs)

		paramValues := make(map[string][]float64, len(paramMeta))
		for pname := range paramMeta {
			paramValues[pname] = make([]float64, len(cvs))
		}
		normArea := make([]float64, len(cvs))

		for i, cv := range cvs {
			frac := cvFrac[cv]
			if frac > 1 {
				frac = 1
			}
			normArea[i] = frac
			for pname, meta := range paramMeta {
				painted := cvParamSum[cv][pname]
				paramValues[pname][i] = painted + meta.Default*(1-frac)
			}
		}

		out[name] = MechanismConfig{
			Kind:        catalogue.Density,
			CV:          cvs,
			ParamValues: paramValues,
			NormArea:    normArea,
		}
	}
	return out, nil
}

// BuildPoint emits one MechanismConfig per distinct point mechanism
// name. When coalesce is true and the mechanism is linear per the
// catalogue, placements sharing a CV and bit-exact parameter values
// are grouped into a single config entry with Multiplicity recording
// the group size and Target concatenating the group's original target
// indices contiguously; otherwise every placement becomes its own
// entry in (cv ascending, placement-order) order and Multiplicity is
// left empty.
func (b *Builder) BuildPoint(cat catalogue.Catalogue, coalesce bool) (map[string]MechanismConfig, error) {
	return buildPointLike(b.point, cat, coalesce, catalogue.Point)
}

// BuildGapJunction emits one MechanismConfig per gap-junction site
// mechanism, one CV and one target per site, never coalesced.
func (b *Builder) BuildGapJunction(cat catalogue.Catalogue) (map[string]MechanismConfig, error) {
	return buildPointLike(b.gap, cat, false, catalogue.GapJunction)
}

func buildPointLike(src map[string][]pointPlacement, cat catalogue.Catalogue, coalesce bool, kind catalogue.MechKind) (map[string]MechanismConfig, error) {
	out := make(map[string]MechanismConfig)
	for name, placements := range src {
		if !cat.Has(name) {
			return nil, cellerr.New(cellerr.UnknownMechanism, "unknown mechanism", cellerr.WithMechanism(name))
		}

		paramMeta := cat.Parameters(name)
		if coalesce && cat.IsLinear(name) {
			out[name] = coalesceGroups(placements, paramMeta, kind)
			continue
		}

		ordered := make([]pointPlacement, len(placements))
		copy(ordered, placements)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].cv < ordered[j].cv })

		cfg := MechanismConfig{Kind: kind, ParamValues: make(map[string][]float64, len(paramMeta))}
		for pname := range paramMeta {
			cfg.ParamValues[pname] = make([]float64, 0, len(ordered))
		}
		for _, p := range ordered {
			cfg.CV = append(cfg.CV, p.cv)
			cfg.Target = append(cfg.Target, p.target)
			for pname, meta := range paramMeta {
				v, ok := p.params[pname]
				if !ok {
					v = meta.Default
				}
				cfg.ParamValues[pname] = append(cfg.ParamValues[pname], v)
			}
		}
		out[name] = cfg
	}
	return out, nil
}

// coalesceGroups groups placements by (cv, param_values) bit-exact
// equality, building one config entry per group.
func coalesceGroups(placements []pointPlacement, paramMeta map[string]catalogue.ParamMeta, kind catalogue.MechKind) MechanismConfig {
	pnames := make([]string, 0, len(paramMeta))
	for pname := range paramMeta {
		pnames = append(pnames, pname)
	}
	sort.Strings(pnames)

	type groupKey struct {
		cv     int
		values string
	}
	groupOf := make(map[groupKey]int) // key -> index into groups
	type group struct {
		cv      int
		values  []float64
		targets []int
	}
	var groups []group

	keyFor := func(cv int, values []float64) groupKey {
		s := make([]byte, 0, 8*len(values))
		for _, v := range values {
			s = append(s, encodeFloatKey(v)...)
		}
		return groupKey{cv: cv, values: string(s)}
	}

	for _, p := range placements {
		values := make([]float64, len(pnames))
		for i, pname := range pnames {
			v, ok := p.params[pname]
			if !ok {
				v = paramMeta[pname].Default
			}
			values[i] = v
		}
		k := keyFor(p.cv, values)
		idx, ok := groupOf[k]
		if !ok {
			idx = len(groups)
			groups = append(groups, group{cv: p.cv, values: values})
			groupOf[k] = idx
		}
		groups[idx].targets = append(groups[idx].targets, p.target)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].cv < groups[j].cv })

	cfg := MechanismConfig{Kind: kind, ParamValues: make(map[string][]float64, len(pnames))}
	for _, g := range groups {
		cfg.CV = append(cfg.CV, g.cv)
		cfg.Multiplicity = append(cfg.Multiplicity, len(g.targets))
		cfg.Target = append(cfg.Target, g.targets...)
		for i, pname := range pnames {
			cfg.ParamValues[pname] = append(cfg.ParamValues[pname], g.values[i])
		}
	}
	return cfg
}

// encodeFloatKey renders v as its exact IEEE-754 bit pattern so two
// floats compare equal here iff they are bit-exact, per the spec's
// coalescing rule.
func encodeFloatKey(v float64) []byte {
	bits := math.Float64bits(v)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(bits >> (8 * i))
	}
	return b
}
