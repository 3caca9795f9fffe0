// Package compartment implements the divided compartment model: given
// a cable segment's piecewise-linear radius profile, it integrates the
// frustum-accurate area and volume of each half-compartment along the
// cable.
package compartment

import "math"

// FrustumArea returns the lateral surface area of a truncated cone
// (frustum) of axial length h and end radii r1, r2:
//
//	A = pi*(r1+r2)*l,  l = sqrt(h^2 + (r2-r1)^2)
func FrustumArea(r1, r2, h float64) float64 {
	l := math.Sqrt(h*h + (r2-r1)*(r2-r1))
	return math.Pi * (r1 + r2) * l
}

// FrustumVolume returns the volume of a truncated cone of axial length
// h and end radii r1, r2:
//
//	V = pi*h*(r1^2 + r1*r2 + r2^2)/3
func FrustumVolume(r1, r2, h float64) float64 {
	return math.Pi * h * (r1*r1 + r1*r2 + r2*r2) / 3
}

// RadiusAt linearly interpolates the radius profile at axial position
// x in [0, length], where the profile samples are uniformly spaced
// along the cable.
func RadiusAt(radii []float64, length, x float64) float64 {
	n := len(radii)
	if n == 1 {
		return radii[0]
	}
	if length <= 0 {
		return radii[0]
	}
	// Clamp into range to tolerate floating point overshoot at the ends.
	if x < 0 {
		x = 0
	}
	if x > length {
		x = length
	}
	step := length / float64(n-1)
	idx := int(x / step)
	if idx >= n-1 {
		idx = n - 2
	}
	x0 := float64(idx) * step
	t := (x - x0) / step
	return radii[idx] + t*(radii[idx+1]-radii[idx])
}

// Half is the area and volume of both halves (left and right) of one
// compartment, split at the compartment's midpoint.
type Half struct {
	AreaLeft, AreaRight     float64
	VolumeLeft, VolumeRight float64
	RadiusLeft, RadiusMid, RadiusRight float64
	LengthHalf              float64
}

// Halves computes, for a cable of the given length and radius profile
// subdivided uniformly into n compartments, the left-half and
// right-half frustum area and volume of each compartment. The i-th
// compartment spans [i*L/n, (i+1)*L/n] and is subdivided at its
// midpoint, so each returned Half covers a span of L/n made of two
// halves of L/(2n) each.
func Halves(length float64, radii []float64, n int) []Half {
	if n < 1 {
		return nil
	}
	out := make([]Half, n)
	compLen := length / float64(n)
	halfLen := compLen / 2

	for i := 0; i < n; i++ {
		x0 := float64(i) * compLen
		xm := x0 + halfLen
		x1 := x0 + compLen

		r0 := RadiusAt(radii, length, x0)
		rm := RadiusAt(radii, length, xm)
		r1 := RadiusAt(radii, length, x1)

		out[i] = Half{
			AreaLeft:    FrustumArea(r0, rm, halfLen),
			AreaRight:   FrustumArea(rm, r1, halfLen),
			VolumeLeft:  FrustumVolume(r0, rm, halfLen),
			VolumeRight: FrustumVolume(rm, r1, halfLen),
			RadiusLeft:  r0,
			RadiusMid:   rm,
			RadiusRight: r1,
			LengthHalf:  halfLen,
		}
	}
	return out
}

// CrossSectionArea returns the cross-sectional (disc) area at radius
// r, used when computing face conductance at a shared CV boundary.
func CrossSectionArea(r float64) float64 {
	return math.Pi * r * r
}
