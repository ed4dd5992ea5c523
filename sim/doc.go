// Package sim implements the ballz motion and collision simulation: a ball
// held in a thin band by device tilt, launched by flick gestures, and scored
// against a platform sweeping back and forth across the screen.
//
// All mutation happens on the goroutine that calls Session.Tick. Sensor
// callbacks may arrive from any goroutine and are folded into a
// latest-value-wins TiltBuffer that is read once per frame.
package sim
