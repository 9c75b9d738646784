// Package gravity implements a closed system of point masses under pairwise
// Newtonian gravity.
//
// All per-body state lives in flat float64 slices so the force kernel is
// plain array arithmetic:
//
//   - positions, velocities: N×D row-major slices (D inferred at construction)
//   - masses: length-N slice
//   - a stable name→slot index assigned in construction order
//
// The system advances by explicit Euler steps, either mutating
// ([System.StepInPlace]) or producing a fresh instance ([System.Stepped]).
// Derived quantities ([System.CenterOfMass], [System.FixMomentum],
// [System.Momentum], [System.Energy]) read the same arrays.
//
// # Example
//
//	sys, _ := gravity.NewSystem(
//	    gravity.Body{Name: "sun", Mass: 1.989e30, Position: []float64{0, 0, 0}, Velocity: []float64{0, 0, 0}},
//	    gravity.Body{Name: "earth", Mass: 5.972e24, Position: []float64{1.496e11, 0, 0}, Velocity: []float64{0, 2.9783e4, 0}},
//	)
//	for i := 0; i < 8760; i++ {
//	    if err := sys.StepInPlace(3600, gravity.G); err != nil {
//	        break
//	    }
//	}
//	earth, _ := sys.Body("earth")
//
// # Thread Safety
//
// A System is NOT thread-safe: StepInPlace and FixMomentum must not run
// concurrently with any other call on the same instance. Independent
// instances share nothing and may be advanced in parallel.
package gravity
