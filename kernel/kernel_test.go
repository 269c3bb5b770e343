// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"testing"

	"cogentcore.org/core/base/errors"

	"github.com/ModelDBRepository/42020/brunel"
)

func limitedKernel(t *testing.T) *Kernel {
	t.Helper()
	k := New()
	if err := k.SetLimits(0.1, 0.1, 1.5); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestKernelOrdering(t *testing.T) {
	k := New()
	if _, err := k.CreateNeurons(nil, 1); !errors.Is(err, brunel.ErrOrdering) {
		t.Errorf("CreateNeurons before SetLimits: %v", err)
	}
	if _, err := k.CreatePoissonSource(1000); !errors.Is(err, brunel.ErrOrdering) {
		t.Errorf("CreatePoissonSource before SetLimits: %v", err)
	}
	if err := k.Connect(0, 1, brunel.Spike, 1, 1.5); !errors.Is(err, brunel.ErrOrdering) {
		t.Errorf("Connect before SetLimits: %v", err)
	}
	if err := k.Advance(10); !errors.Is(err, brunel.ErrOrdering) {
		t.Errorf("Advance before SetLimits: %v", err)
	}

	k = limitedKernel(t)
	if _, err := k.CreateNeurons(nil, 1); err != nil {
		t.Fatal(err)
	}
	if err := k.SetLimits(0.1, 0.1, 1.5); !errors.Is(err, brunel.ErrOrdering) {
		t.Errorf("SetLimits after node creation: %v", err)
	}
}

func TestKernelLimitsValidation(t *testing.T) {
	k := New()
	if err := k.SetLimits(0, 0.1, 1.5); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("zero resolution: %v", err)
	}
	if err := k.SetLimits(0.1, 0.05, 1.5); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("minDelay below resolution: %v", err)
	}
	if err := k.SetLimits(0.1, 1.5, 0.5); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("maxDelay below minDelay: %v", err)
	}
}

func TestKernelConnectValidation(t *testing.T) {
	k := limitedKernel(t)
	ids, err := k.CreateNeurons(nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	ps, err := k.CreatePoissonSource(1000)
	if err != nil {
		t.Fatal(err)
	}
	co, err := k.CreateSpikeCollector(&brunel.CollectorConfig{Label: "T"})
	if err != nil {
		t.Fatal(err)
	}

	if err = k.Connect(ids[0], ids[1], brunel.Spike, 1, 2.0); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("delay above maxDelay: %v", err)
	}
	if err = k.Connect(ids[0], ids[1], brunel.Spike, 1, 0.04); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("delay below minDelay: %v", err)
	}
	if err = k.Connect(co, ids[0], brunel.Spike, 1, 1.5); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("collector as source: %v", err)
	}
	if err = k.Connect(ids[0], ps, brunel.Spike, 1, 1.5); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("poisson as target: %v", err)
	}
	if err = k.Connect(ids[0], 99, brunel.Spike, 1, 1.5); !errors.Is(err, brunel.ErrOrdering) {
		t.Errorf("unknown target: %v", err)
	}
	if err = k.Connect(ids[0], ids[1], brunel.Spike, 1, 1.5); err != nil {
		t.Errorf("valid connect: %v", err)
	}
	if err = k.Connect(ps, ids[0], brunel.Spike, 1, 1.5); err != nil {
		t.Errorf("poisson to neuron: %v", err)
	}
	if err = k.Connect(ids[0], co, brunel.Spike, 1, 0.1); err != nil {
		t.Errorf("neuron to collector: %v", err)
	}
}

// drivenNeuron wires poisson -> neuron -> collector and runs it.
func drivenNeuron(t *testing.T, seed int64, dur float32) (*Kernel, brunel.NodeID) {
	t.Helper()
	k := limitedKernel(t)
	ids, err := k.CreateNeurons(nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	ps, err := k.CreatePoissonSource(100000)
	if err != nil {
		t.Fatal(err)
	}
	co, err := k.CreateSpikeCollector(&brunel.CollectorConfig{Label: "T"})
	if err != nil {
		t.Fatal(err)
	}
	if err = k.Connect(ps, ids[0], brunel.Spike, 0.1, 1.5); err != nil {
		t.Fatal(err)
	}
	if err = k.Connect(ids[0], co, brunel.Spike, 1, 0.1); err != nil {
		t.Fatal(err)
	}
	k.SetRandSeeds([]int64{seed})
	if err = k.Advance(dur); err != nil {
		t.Fatal(err)
	}
	return k, co
}

func TestKernelCollector(t *testing.T) {
	dur := float32(100)
	k, co := drivenNeuron(t, 7, dur)
	n, err := k.CollectedEventCount(co)
	if err != nil {
		t.Fatal(err)
	}
	evs, err := k.CollectedEvents(co)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(evs) {
		t.Errorf("count %d != events %d", n, len(evs))
	}
	if n == 0 {
		t.Fatal("strongly driven neuron never fired")
	}
	// refractory period bounds the rate
	maxSpikes := int(dur/2) + 1
	if n > maxSpikes {
		t.Errorf("spike count %d beats refractory ceiling %d", n, maxSpikes)
	}
	last := float32(0)
	for _, ev := range evs {
		if ev.Time <= last-difTol {
			t.Errorf("event times not ordered: %v after %v", ev.Time, last)
		}
		if ev.Time <= 0 || ev.Time > dur+difTol {
			t.Errorf("event time out of range: %v", ev.Time)
		}
		last = ev.Time
	}

	if _, err = k.CollectedEventCount(0); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("count on non-collector: %v", err)
	}
}

func TestKernelSeedDeterminism(t *testing.T) {
	k1, co1 := drivenNeuron(t, 42, 100)
	k2, co2 := drivenNeuron(t, 42, 100)
	e1, _ := k1.CollectedEvents(co1)
	e2, _ := k2.CollectedEvents(co2)
	if len(e1) != len(e2) {
		t.Fatalf("event counts differ: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Fatalf("event %d differs: %v vs %v", i, e1[i], e2[i])
		}
	}
	k3, co3 := drivenNeuron(t, 43, 100)
	e3, _ := k3.CollectedEvents(co3)
	same := len(e1) == len(e3)
	if same {
		for i := range e1 {
			if e1[i] != e3[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Errorf("different seeds produced identical spike trains")
	}
}

func TestKernelNeuronConfig(t *testing.T) {
	k := limitedKernel(t)
	bad := &brunel.NeuronConfig{}
	bad.Defaults()
	bad.TauSyn = bad.TauMem
	if _, err := k.CreateNeurons(bad, 1); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("TauMem == TauSyn: %v", err)
	}
	ids, err := k.CreateNeurons(nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	good := &brunel.NeuronConfig{}
	good.Defaults()
	good.TauMem = 10
	if err = k.SetNeuronConfig(ids[0], good); err != nil {
		t.Fatal(err)
	}
	if err = k.SetNeuronConfig(ids[0], bad); !errors.Is(err, brunel.ErrConfig) {
		t.Errorf("bad config accepted: %v", err)
	}
}

func TestClockDelaySteps(t *testing.T) {
	ck := Clock{Dt: 0.1, MinDelay: 0.1, MaxDelay: 1.5}
	ck.Reset()
	if st := ck.DelaySteps(1.5); st != 15 {
		t.Errorf("DelaySteps(1.5): %d", st)
	}
	if st := ck.DelaySteps(0.1); st != 1 {
		t.Errorf("DelaySteps(0.1): %d", st)
	}
	if !ck.DelayInBounds(1.5) || !ck.DelayInBounds(0.1) {
		t.Errorf("bounds rejected in-range delays")
	}
	if ck.DelayInBounds(1.6) || ck.DelayInBounds(0.04) {
		t.Errorf("bounds accepted out-of-range delays")
	}
	for i := 0; i < 1000; i++ {
		ck.StepInc()
	}
	// time is recomputed from the step count, not accumulated
	if dif := ck.Time - 100; dif > 1e-4 || dif < -1e-4 {
		t.Errorf("time after 1000 steps: %v", ck.Time)
	}
}
