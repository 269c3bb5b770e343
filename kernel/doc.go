// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package kernel is the reference in-process neuronal simulation kernel
behind the brunel.Kernel contract: leaky integrate-and-fire neurons with
alpha-function current synapses advanced by exact integration, spike
delivery with per-connection delays through per-neuron ring buffers,
Poissonian background sources, and spike collectors.

The kernel is single-threaded: one random stream drives all Poisson
sources, nodes are updated in id order, and a global clock advances in
fixed steps of the configured resolution.
*/
package kernel
