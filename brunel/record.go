// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brunel

import (
	"fmt"

	"cogentcore.org/core/tensor/table"
)

// WireRecorders connects the first nrec neurons of the population, in
// creation order (a deterministic choice, not a random sample), to the
// given spike collector, each with weight 1 and a delay of one
// simulation step.  Exactly nrec connection slots are reserved on the
// collector before the first connect call.  nrec negative or larger
// than the population is a configuration error.
//
// The delay argument is the kernel resolution (the minimum permitted
// delay).
func WireRecorders(k Kernel, pop *Population, collector NodeID, nrec int, delay float32) error {
	if nrec < 0 || nrec > pop.Len() {
		return fmt.Errorf("%w: Nrec %d outside %s population size %d", ErrConfig, nrec, pop.Name, pop.Len())
	}
	k.ReserveConnections(collector, nrec)
	for _, id := range pop.First(nrec) {
		if err := k.Connect(id, collector, Spike, 1, delay); err != nil {
			return err
		}
	}
	return nil
}

// ComputeRate converts a collector's event count into the average
// per-neuron firing rate in Hz over nrec recorded neurons and simtime
// ms of simulated time.  The factor 1000 combines the ms-to-s and
// kHz-to-Hz conversions.  Zero events, zero neurons, or zero time all
// give 0, not an error.
func ComputeRate(events, nrec int, simtime float32) float32 {
	if events == 0 || nrec == 0 || simtime <= 0 {
		return 0
	}
	return float32(events) / (float32(nrec) * simtime) * 1000
}

// SpikeTable renders recorded spike events into a table with one row
// per spike: the neuron id and the spike time in ms.
func SpikeTable(events []SpikeEvent) *table.Table {
	dt := &table.Table{}
	dt.AddIntColumn("NeuronId")
	dt.AddFloat32Column("TimeMs")
	dt.SetNumRows(len(events))
	for i, ev := range events {
		dt.SetFloat("NeuronId", i, float64(ev.Neuron))
		dt.SetFloat("TimeMs", i, float64(ev.Time))
	}
	return dt
}
