// Package control adapts the epid controller to the simulator.
//
// A [Loop] runs the per-sample sequence of an embedded control task:
//
//	measure -> (filter) -> calc -> (filter D) -> (I limit) -> deadband -> sum
//
// and returns the control vector [CV, P, I, D, SP]. Plants only read the
// first element; the rest is recorded for plots and exports.
//
//   - [Loop]: closed loop around [epid.Controller]
//   - [Manual]: open loop, constant output
//
// Loop implements [sim.Configurable] for live tuning of kp, ki, kd and the
// setpoint.
package control
