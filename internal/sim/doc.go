// Package sim runs a sampled control loop against a continuous plant.
//
// The simulator owns the sample clock: every Dt it asks the [Controller] for
// a control vector, lets observers and metrics see the sample, and advances
// the plant ([Dynamics]) with an [Integrator]. Scheduled [Disturbance]s are
// added to the plant state before the sample they fall on.
//
// # Thread Safety
//
// A Simulator and the controller it drives are NOT thread-safe. Run
// independent loops on independent simulators.
package sim
