// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"cogentcore.org/core/math32"

	"github.com/ModelDBRepository/42020/brunel"
)

// Neuron is one leaky integrate-and-fire neuron with an alpha-function
// current synapse, integrated exactly: the linear subthreshold dynamics
//
//	y1' = -y1/tauSyn
//	y2' = y1 - y2/tauSyn
//	v'  = -(v - U0)/tauMem + y2/C
//
// are advanced per step by propagators computed once from the model
// parameters and the resolution, so the update is exact for any step
// size.  An incoming spike of weight w adds w*e/tauSyn to y1, which
// makes the resulting synaptic current an alpha function peaking at
// exactly w.
type Neuron struct {

	// model parameters
	Cfg brunel.NeuronConfig

	// membrane potential (mV)
	V float32

	// synaptic current state: y2 is the current, y1 its derivative term
	Y1, Y2 float32

	// remaining refractory steps; membrane clamped at U0 while > 0
	Ref int32

	// per-step exact integration propagators, from Cfg and dt
	P11, P21, P33, P31, P32 float32

	// spike input normalization e/tauSyn
	PSCInit float32

	// refractory period in steps
	RefSteps int32

	// delivery ring buffer: accumulated weighted spike input per future
	// step, indexed by step number modulo its length
	In []float32
}

// Init sets the model parameters, computes the propagators for the
// given resolution, allocates a delivery ring buffer of ringLen slots,
// and resets the state to resting potential.
func (nr *Neuron) Init(cfg *brunel.NeuronConfig, dt float32, ringLen int) {
	nr.Cfg = *cfg
	nr.UpdateProps(dt)
	nr.In = make([]float32, ringLen)
	nr.V = cfg.U0
	nr.Y1 = 0
	nr.Y2 = 0
	nr.Ref = 0
}

// UpdateProps recomputes the exact integration propagators.  Must be
// called after any parameter change.
func (nr *Neuron) UpdateProps(dt float32) {
	cfg := &nr.Cfg
	a := 1 / cfg.TauSyn
	b := 1 / cfg.TauMem
	d := a - b
	es := math32.Exp(-dt * a)
	em := math32.Exp(-dt * b)
	nr.P11 = es
	nr.P21 = dt * es
	nr.P33 = em
	nr.P32 = (em - es) / (cfg.C * d)
	nr.P31 = ((em-es)/d - dt*es) / (cfg.C * d)
	nr.PSCInit = math32.E / cfg.TauSyn
	nr.RefSteps = int32(math32.Round(cfg.TauRef / dt))
}

// Step advances the neuron by one step, consuming the ring buffer slot
// for the current step, and reports whether the neuron fired.  During
// the refractory period the membrane stays clamped at U0 while the
// synaptic state keeps evolving.
func (nr *Neuron) Step(slot int) bool {
	inp := nr.In[slot]
	nr.In[slot] = 0
	if nr.Ref > 0 {
		nr.Ref--
		nr.V = nr.Cfg.U0
	} else {
		nr.V = nr.Cfg.U0 + nr.P33*(nr.V-nr.Cfg.U0) + nr.P31*nr.Y1 + nr.P32*nr.Y2
	}
	nr.Y2 = nr.P21*nr.Y1 + nr.P11*nr.Y2
	nr.Y1 = nr.P11 * nr.Y1
	nr.Y1 += nr.PSCInit * inp
	if nr.V >= nr.Cfg.Theta {
		nr.V = nr.Cfg.U0
		nr.Ref = nr.RefSteps
		return true
	}
	return false
}
