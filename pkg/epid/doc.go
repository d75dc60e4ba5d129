// Package epid implements a discrete-time Type-C PID controller and a
// single-pole low-pass filter for fixed sample-period control loops.
//
// The controller follows the incremental (velocity) form
//
//	P[k] = Kp * (x[k-1] - x[k])
//	I[k] = Ki * (SP - x[k])
//	D[k] = Kd * (2*x[k-1] - x[k-2] - x[k])
//	y[k] = y[k-1] + P[k] + I[k] + D[k]
//
// where x is the measured process variable and y the control output. Only the
// integral term sees the setpoint, so setpoint steps cause no proportional or
// derivative kick.
//
// # Usage
//
//	c := epid.New(true)
//	if err := c.Init(pv, pv, 0, 500, 10, 200); err != nil {
//	    return err
//	}
//	for range ticker.C {
//	    c.PIDCalc(setpoint, readSensor())
//	    c.ILimit(-100, 100)
//	    drive(c.PIDSum(0, 500))
//	}
//
// # Thread Safety
//
// A Controller or LowPass must only be used from one goroutine at a time.
// Separate instances share nothing.
package epid
