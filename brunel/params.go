// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brunel

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Fudge is the PSP normalization constant for the alpha-function current
// synapse at unit membrane capacitance, tauMem = 20 ms, tauSyn = 0.5 ms:
// a synaptic weight of J/tauSyn * Fudge deposits a postsynaptic potential
// peaking at exactly J mV at resting potential.
const Fudge = 0.41363506632638

// Params are the biologically motivated inputs of the Brunel (2000)
// model.  Everything else the network needs -- synaptic weights, the
// external drive rate, synapse counts -- is derived from these by
// Derive.  Set once before construction, never mutated afterward.
type Params struct {

	// network scale: the excitatory population has 4 * Order neurons,
	// the inhibitory population 1 * Order
	Order int `default:"2500" min:"1"`

	// relative strength of inhibitory synapses: JI = -G * JE
	G float32 `default:"5" min:"0"`

	// external drive rate relative to the threshold rate:
	// NuExt = Eta * NuThresh
	Eta float32 `default:"2"`

	// postsynaptic potential amplitude of an excitatory synapse (mV)
	J float32 `default:"0.1"`

	// membrane time constant (ms)
	TauMem float32 `default:"20"`

	// synaptic current rise time (ms)
	TauSyn float32 `default:"0.5"`

	// absolute refractory period (ms)
	TauRef float32 `default:"2"`

	// resting and reset membrane potential (mV)
	U0 float32 `default:"0"`

	// spike threshold (mV)
	Theta float32 `default:"20"`

	// synaptic transmission delay (ms), uniform across all synapses
	Delay float32 `default:"1.5"`

	// connection probability: each neuron receives round(Epsilon * NE)
	// excitatory and round(Epsilon * NI) inhibitory synapses
	Epsilon float32 `default:"0.1"`

	// number of neurons per population wired to the spike collectors
	Nrec int `default:"50"`
}

func (pr *Params) Defaults() {
	pr.Order = 2500
	pr.G = 5
	pr.Eta = 2
	pr.J = 0.1
	pr.TauMem = 20
	pr.TauSyn = 0.5
	pr.TauRef = 2
	pr.U0 = 0
	pr.Theta = 20
	pr.Delay = 1.5
	pr.Epsilon = 0.1
	pr.Nrec = 50
}

// NeuronConfig returns the kernel neuron parameter set for these params.
func (pr *Params) NeuronConfig() *NeuronConfig {
	return &NeuronConfig{
		TauMem: pr.TauMem,
		TauSyn: pr.TauSyn,
		TauRef: pr.TauRef,
		U0:     pr.U0,
		Theta:  pr.Theta,
		C:      1,
	}
}

// Derived are the quantities computed from Params: population and
// synapse counts, scaled synaptic weights, and external drive rates.
// Computed once by Derive, never mutated.
type Derived struct {

	// excitatory population size: 4 * Order
	NE int

	// inhibitory population size: 1 * Order
	NI int

	// total number of neurons: NE + NI
	N int

	// excitatory in-degree of every neuron: round(Epsilon * NE)
	CE int

	// inhibitory in-degree of every neuron: round(Epsilon * NI)
	CI int

	// number of external (Poisson) synapses per neuron -- always CE
	CExt int

	// excitatory synaptic weight: J / TauSyn * Fudge
	JE float32

	// inhibitory synaptic weight: -G * JE
	JI float32

	// external rate needed to reach threshold asymptotically,
	// per synapse (kHz): Theta / (J * CE * TauMem)
	NuThresh float32

	// actual external per-synapse rate (kHz): Eta * NuThresh
	NuExt float32

	// total rate of one external Poisson source per target (spikes/s):
	// 1000 * NuExt * CExt
	PRate float32
}

// Derive computes all derived quantities from the inputs.  Counts use
// round-to-nearest, never truncation, to avoid systematically
// under-connecting the network.  Returns ErrConfig for non-positive
// Order or time constants, or a negative Epsilon.
func (pr *Params) Derive() (Derived, error) {
	var dv Derived
	if pr.Order <= 0 {
		return dv, fmt.Errorf("%w: Order must be positive, got %d", ErrConfig, pr.Order)
	}
	if pr.TauSyn <= 0 || pr.TauMem <= 0 {
		return dv, fmt.Errorf("%w: time constants must be positive, got TauSyn %g, TauMem %g", ErrConfig, pr.TauSyn, pr.TauMem)
	}
	if pr.Epsilon < 0 {
		return dv, fmt.Errorf("%w: Epsilon must be non-negative, got %g", ErrConfig, pr.Epsilon)
	}
	if pr.Nrec < 0 {
		return dv, fmt.Errorf("%w: Nrec must be non-negative, got %d", ErrConfig, pr.Nrec)
	}
	dv.NE = 4 * pr.Order
	dv.NI = pr.Order
	dv.N = dv.NE + dv.NI
	dv.CE = int(math32.Round(pr.Epsilon * float32(dv.NE)))
	dv.CI = int(math32.Round(pr.Epsilon * float32(dv.NI)))
	if dv.CE == 0 {
		// the threshold rate is calibrated per excitatory synapse:
		// with none, NuThresh has no finite value
		return dv, fmt.Errorf("%w: Epsilon %g gives zero excitatory synapses per neuron", ErrConfig, pr.Epsilon)
	}
	dv.CExt = dv.CE
	dv.JE = pr.J / pr.TauSyn * Fudge
	dv.JI = -pr.G * dv.JE
	dv.NuThresh = pr.Theta / (pr.J * float32(dv.CE) * pr.TauMem)
	dv.NuExt = pr.Eta * dv.NuThresh
	dv.PRate = 1000 * dv.NuExt * float32(dv.CExt)
	return dv, nil
}

// NSyn returns the total number of synapses the built network contains:
// CE + CI internal plus 1 external per neuron, plus the recording
// connections of both populations.
func (dv *Derived) NSyn(nrec int) int {
	return (dv.CE+dv.CI+1)*dv.N + 2*nrec
}
