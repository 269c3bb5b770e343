// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brunel

import "fmt"

// Population is an ordered collection of neuron ids homogeneous in model
// parameters.  Exactly two exist in the network: excitatory and
// inhibitory.  The id list is fixed at construction and immutable
// afterward.
type Population struct {

	// name of the population, e.g. "Excit", "Inhib"
	Name string

	// neuron ids in creation order
	Units []NodeID
}

func (pp *Population) Len() int { return len(pp.Units) }

// Build allocates n neurons in the kernel with the given model
// parameters and records their ids in creation order.  It also forward
// reserves storage for the expected number of connections per neuron
// (reserve) before any connect call, so connection storage never grows
// incrementally during the construction phase.
func (pp *Population) Build(k Kernel, cfg *NeuronConfig, n, reserve int) error {
	if n <= 0 {
		return fmt.Errorf("%w: population %s size must be positive, got %d", ErrConfig, pp.Name, n)
	}
	ids, err := k.CreateNeurons(cfg, n)
	if err != nil {
		return err
	}
	pp.Units = ids
	for _, id := range ids {
		k.ReserveConnections(id, reserve)
	}
	return nil
}

// First returns the first n neurons in creation order -- the
// deterministic recorded subset.
func (pp *Population) First(n int) []NodeID {
	return pp.Units[:n]
}
