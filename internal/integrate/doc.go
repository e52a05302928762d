// Package integrate provides fixed-step numerical integration of scalar
// first-order ODEs dy/dx = f(x, y).
//
// Steppers are pure: a [Stepper] advances one step and keeps no state
// between calls, so the same stepper serves outward (Direction +1) and
// inward (Direction -1) sweeps. The [Integrate] driver walks a whole
// trajectory and halts early when the right-hand side or the produced
// value goes non-finite; that truncation is a normal termination signal,
// not an error.
package integrate
