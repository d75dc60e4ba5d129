// Package viz is the live terminal view of a running loop, built on
// Bubble Tea.
//
// The loop is stepped at its sample clock (speed samples per tick) and the
// view charts PV against SP and the controller output.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from t = 0, keeping tuned values
//	Tab   - Cycle kp, ki, kd, setpoint
//	Up/K  - Increase selected value by 5%
//	Down/J- Decrease selected value by 5%
//	Q     - Quit
package viz
