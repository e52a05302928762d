// Package wind solves the momentum equation of an isothermal stellar wind
// (the Parker wind problem),
//
//	dv/dr = v * (2a²/r − GM/r²) / (v² − a²),
//
// where a is the isothermal sound speed. The equation has a removable
// singularity at the critical (sonic) point r_c = GM/2a², v = a, where
// numerator and denominator vanish together; the limiting slope there is
// ±a/r_c and is exposed separately so no caller ever divides 0 by 0.
//
// The [Classifier] produces the six numerically integrable solution
// families: the physical transonic wind, the unphysical decelerating
// transonic curve, two subsonic breezes and two everywhere-supersonic
// curves. The remaining mathematically valid families are double-valued in
// r and cannot be reached by single-direction integration from the critical
// point; they are not computed.
package wind
