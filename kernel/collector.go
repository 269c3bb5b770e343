// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/ModelDBRepository/42020/brunel"

// Collector accumulates one timestamped event per spike of every neuron
// wired to it.  Write-many during the run, read-once afterward.
type Collector struct {

	// label identifying the collector in reports
	Label string

	// recorded events in delivery order
	Events []brunel.SpikeEvent
}

// Record appends one spike event.
func (co *Collector) Record(neuron brunel.NodeID, time float32) {
	co.Events = append(co.Events, brunel.SpikeEvent{Neuron: neuron, Time: time})
}
