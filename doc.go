// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package brunel is the repository for a Go implementation of the sparsely
connected random network of integrate-and-fire neurons from Brunel (2000),
Journal of Computational Neuroscience 8: 183-208.

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* brunel: the core network-construction and experiment-orchestration layer:
parameter derivation, the two excitatory / inhibitory populations, the
fixed in-degree random connectivity algorithm, recording topology, and the
time-stepped simulation driver.  It talks to a neuronal simulation kernel
only through a small typed interface, so the same experiment can run on
any kernel implementing that contract.

* kernel: a reference in-process kernel implementing that contract, with
leaky integrate-and-fire neurons using alpha-function current synapses
(exact integration), delayed spike delivery through per-neuron ring
buffers, Poissonian background drive, and spike collectors.

* examples: runnable programs.  examples/brunel builds and simulates the
full network from the command line and reports per-population firing
rates, construction time, and simulation time.
*/
package brunel
