// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"testing"

	"cogentcore.org/core/math32"

	"github.com/ModelDBRepository/42020/brunel"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

// peak of the calibrated post-synaptic potential for J = 0.1:
// weight JE = J * Fudge / tauSyn delivered to a resting neuron must
// depolarize the membrane by J at its peak
const (
	testDt   = float32(0.1)
	testJE   = float32(0.1 * brunel.Fudge / 0.5)
	pspPeak  = float32(0.1)
	pspPeakT = float32(2.9)
)

func TestNeuronProps(t *testing.T) {
	cfg := &brunel.NeuronConfig{}
	cfg.Defaults()
	nr := &Neuron{}
	nr.Init(cfg, testDt, 16)
	if dif := math32.Abs(nr.P11 - math32.Exp(-testDt/cfg.TauSyn)); dif > difTol {
		t.Errorf("P11 dif: %v", dif)
	}
	if dif := math32.Abs(nr.P33 - math32.Exp(-testDt/cfg.TauMem)); dif > difTol {
		t.Errorf("P33 dif: %v", dif)
	}
	if dif := math32.Abs(nr.P21 - testDt*nr.P11); dif > difTol {
		t.Errorf("P21 dif: %v", dif)
	}
	if dif := math32.Abs(nr.PSCInit - math32.E/cfg.TauSyn); dif > difTol {
		t.Errorf("PSCInit dif: %v", dif)
	}
	if nr.RefSteps != 20 {
		t.Errorf("RefSteps: %d", nr.RefSteps)
	}
}

func TestNeuronPSPPeak(t *testing.T) {
	cfg := &brunel.NeuronConfig{}
	cfg.Defaults()
	cfg.Theta = 1e9 // keep it subthreshold throughout
	nr := &Neuron{}
	nr.Init(cfg, testDt, 16)
	nr.In[0] = testJE

	var vMax, tMax float32
	for si := 0; si < 500; si++ {
		nr.Step(si % len(nr.In))
		if nr.V > vMax {
			vMax = nr.V
			tMax = float32(si+1) * testDt
		}
	}
	if dif := math32.Abs(vMax - pspPeak); dif > 1e-4 {
		t.Errorf("PSP peak: %v, dif: %v", vMax, dif)
	}
	if dif := math32.Abs(tMax - pspPeakT); dif > 1e-3 {
		t.Errorf("PSP peak time: %v, dif: %v", tMax, dif)
	}
	if nr.V <= 0 || nr.V >= vMax {
		t.Errorf("V after decay: %v", nr.V)
	}
}

func TestNeuronSpikeReset(t *testing.T) {
	// threshold below the PSP peak: the single input produces exactly one
	// spike, on the crossing step, then reset and refractory clamp
	cfg := &brunel.NeuronConfig{}
	cfg.Defaults()
	cfg.Theta = 0.05
	nr := &Neuron{}
	nr.Init(cfg, testDt, 16)
	nr.In[0] = testJE

	var spikes []float32
	for si := 0; si < 500; si++ {
		if nr.Step(si % len(nr.In)) {
			spikes = append(spikes, float32(si+1)*testDt)
			if nr.V != cfg.U0 {
				t.Errorf("V not reset after spike: %v", nr.V)
			}
			if nr.Ref != nr.RefSteps {
				t.Errorf("Ref after spike: %d", nr.Ref)
			}
		} else if nr.Ref > 0 && nr.V != cfg.U0 {
			t.Errorf("V not clamped during refractory period: %v", nr.V)
		}
	}
	if len(spikes) != 1 {
		t.Fatalf("spike count: %d, want 1 (times %v)", len(spikes), spikes)
	}
	if dif := math32.Abs(spikes[0] - 0.9); dif > 1e-4 {
		t.Errorf("spike time: %v", spikes[0])
	}
}

func TestNeuronRingConsumed(t *testing.T) {
	// each slot is consumed exactly once: re-stepping the same slot with
	// no new input must not re-deliver
	cfg := &brunel.NeuronConfig{}
	cfg.Defaults()
	nr := &Neuron{}
	nr.Init(cfg, testDt, 4)
	nr.In[2] = testJE
	nr.Step(2)
	if nr.In[2] != 0 {
		t.Errorf("slot not cleared: %v", nr.In[2])
	}
	y1 := nr.Y1
	if y1 == 0 {
		t.Fatalf("input not delivered")
	}
	nr2 := &Neuron{}
	nr2.Init(cfg, testDt, 4)
	nr2.Step(2)
	if nr2.Y1 != 0 {
		t.Errorf("empty slot delivered input: %v", nr2.Y1)
	}
}
