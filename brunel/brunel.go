// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package brunel implements construction and orchestration of the sparsely
connected random spiking network from Brunel (2000): two populations of
leaky integrate-and-fire neurons (excitatory NE = 4 * Order, inhibitory
NI = Order), randomly interconnected with fixed in-degree, each neuron
driven by an independent Poisson background source, with spikes recorded
from a subset of each population for firing rate analysis.

The package owns the model parameter derivation, the population identity
lists, the convergent (fixed fan-in) random connectivity algorithm, the
recording topology, and the state-machine simulation driver.  All actual
neuron dynamics, event delivery, and random background generation happen
in a neuronal simulation kernel accessed through the Kernel interface --
package kernel in this repository provides the reference implementation.
*/
package brunel
