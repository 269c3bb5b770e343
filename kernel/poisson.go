// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

// PoissonSource emits an independent Poisson spike train to each of its
// targets.  Per step and per outgoing connection, the number of spikes
// is drawn from a Poisson distribution with mean rate * dt, so distinct
// targets never see correlated drive.
type PoissonSource struct {

	// emission rate (spikes/s) per target
	Rate float32

	// expected spikes per step: Rate * dt / 1000, cached at run start
	Lambda float64
}
