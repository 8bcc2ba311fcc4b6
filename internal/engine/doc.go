// Package engine contains the office simulation loop: per-agent mood and
// energy state, movement control, and the ambient event scheduler.
// This is the heartbeat of the virtual office.
package engine
