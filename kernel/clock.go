// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "cogentcore.org/core/math32"

// Clock holds the global timing state of the kernel: the integration
// resolution, the delay bounds that every connection must respect, and
// the elapsed simulated time.  It advances monotonically during a run
// and is reset exactly once, when the kernel limits are set.
type Clock struct {

	// integration step size (ms)
	Dt float32

	// minimum synaptic delay (ms) -- no connection delay may be smaller
	MinDelay float32

	// maximum synaptic delay (ms) -- no connection delay may be larger,
	// and it bounds the length of the delivery ring buffers
	MaxDelay float32

	// accumulated simulated time (ms) since Reset
	Time float32

	// number of steps taken since Reset
	Step int
}

// Reset zeroes the elapsed time and step counters.
func (ck *Clock) Reset() {
	ck.Time = 0
	ck.Step = 0
}

// StepInc advances the clock by one step.  Time is recomputed from the
// step count so it cannot drift from repeated float addition.
func (ck *Clock) StepInc() {
	ck.Step++
	ck.Time = float32(ck.Step) * ck.Dt
}

// DelaySteps converts a delay in ms to a whole number of steps,
// round-to-nearest.
func (ck *Clock) DelaySteps(delay float32) int {
	return int(math32.Round(delay / ck.Dt))
}

// DelayInBounds reports whether the given delay lies within the
// configured [MinDelay, MaxDelay] bounds, with half-a-step tolerance
// for float rounding.
func (ck *Clock) DelayInBounds(delay float32) bool {
	tol := 0.5 * ck.Dt
	return delay >= ck.MinDelay-tol && delay <= ck.MaxDelay+tol
}
