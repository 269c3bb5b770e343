// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brunel

import (
	"fmt"
	"io"

	"cogentcore.org/core/base/timer"
	"cogentcore.org/core/core"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/tensor/table"
)

// SimState is the lifecycle state of a simulation run.  Transitions only
// move forward: Unconfigured -> Configured -> Built -> Running ->
// Completed.  Any out-of-order transition attempt is an ordering error.
type SimState int32

const (
	// Unconfigured: nothing exists yet; kernel limits not set.
	Unconfigured SimState = iota

	// Configured: kernel resolution and delay bounds are set; no
	// node has been created yet.
	Configured

	// Built: populations, sources, collectors, and all synapses exist.
	Built

	// Running: the kernel is advancing in steps of the resolution.
	Running

	// Completed: the configured simulation time has elapsed; collected
	// events may now be read.
	Completed
)

var simStateNames = []string{"Unconfigured", "Configured", "Built", "Running", "Completed"}

func (st SimState) String() string {
	if st < Unconfigured || st > Completed {
		return fmt.Sprintf("SimState(%d)", int32(st))
	}
	return simStateNames[st]
}

// Sim drives one complete Brunel network experiment through a kernel:
// configure limits, build the network, advance the clock for the
// configured duration, and compute output firing rates.  Construction
// is all-or-nothing: any failure before Built aborts the run.
// Recording is best-effort: I/O failures after the run are surfaced but
// never roll back network state or already-elapsed simulated time.
type Sim struct {

	// the network model; parameters are set on Net.Params before Configure
	Net *Network

	// the simulation kernel the experiment runs on
	Kernel Kernel

	// current lifecycle state
	State SimState

	// total simulated duration (ms)
	SimTime float32 `default:"1000"`

	// integration resolution dt (ms)
	Dt float32 `default:"0.1"`

	// seeds for the kernel-internal random streams, set at the start of
	// Run (one per kernel thread)
	KernelSeeds []int64

	// wall-clock time of the construction phase
	BuildTime timer.Time

	// wall-clock time of the simulation phase
	SimCPUTime timer.Time
}

// NewSim returns a simulation of the given network on the given kernel,
// with default run parameters.
func NewSim(net *Network, k Kernel) *Sim {
	sim := &Sim{Net: net, Kernel: k}
	sim.SimTime = 1000
	sim.Dt = 0.1
	sim.KernelSeeds = []int64{1}
	return sim
}

// Configure sets the kernel resolution and delay bounds.  It must run
// before any neuron or connection exists; the delay bounds are chosen
// to bracket both the synaptic delay and the one-step recording delay.
func (sim *Sim) Configure() error {
	if sim.State != Unconfigured {
		return fmt.Errorf("%w: Configure in state %v", ErrOrdering, sim.State)
	}
	if sim.Dt <= 0 || sim.SimTime < 0 {
		return fmt.Errorf("%w: Dt %g and SimTime %g must be positive", ErrConfig, sim.Dt, sim.SimTime)
	}
	maxDelay := math32.Max(sim.Net.Params.Delay, sim.Dt)
	if err := sim.Kernel.SetLimits(sim.Dt, sim.Dt, maxDelay); err != nil {
		return err
	}
	sim.State = Configured
	return nil
}

// Build constructs the full network, recording the elapsed construction
// time.  Any error is fatal to the run: no partial network is usable.
func (sim *Sim) Build() error {
	if sim.State != Configured {
		return fmt.Errorf("%w: Build in state %v", ErrOrdering, sim.State)
	}
	sim.BuildTime.Start()
	if err := sim.Net.Build(sim.Kernel, sim.Dt); err != nil {
		return err
	}
	sim.BuildTime.Stop()
	sim.State = Built
	return nil
}

// Run seeds the kernel random streams and advances the kernel in
// discrete steps of Dt until SimTime has elapsed, recording the elapsed
// wall-clock time.  The spike collectors accumulate events throughout.
func (sim *Sim) Run() error {
	if sim.State != Built {
		return fmt.Errorf("%w: Run in state %v", ErrOrdering, sim.State)
	}
	sim.Kernel.SetRandSeeds(sim.KernelSeeds)
	sim.State = Running
	sim.SimCPUTime.Start()
	if err := sim.Kernel.Advance(sim.SimTime); err != nil {
		return err
	}
	sim.SimCPUTime.Stop()
	sim.State = Completed
	return nil
}

// Rates returns the average per-neuron firing rate in Hz of the
// recorded excitatory and inhibitory subsets.  Only valid once the run
// has completed.
func (sim *Sim) Rates() (excit, inhib float32, err error) {
	if sim.State != Completed {
		return 0, 0, fmt.Errorf("%w: Rates in state %v", ErrOrdering, sim.State)
	}
	ne, err := sim.Kernel.CollectedEventCount(sim.Net.ExcitSpikes)
	if err != nil {
		return 0, 0, err
	}
	ni, err := sim.Kernel.CollectedEventCount(sim.Net.InhibSpikes)
	if err != nil {
		return 0, 0, err
	}
	nrec := sim.Net.Params.Nrec
	return ComputeRate(ne, nrec, sim.SimTime), ComputeRate(ni, nrec, sim.SimTime), nil
}

// WriteSpikes writes the two per-population spike logs, one line per
// recorded spike as (neuronId, timestampMs), tab separated.  I/O errors
// are returned to the caller but do not unwind the built network or the
// elapsed simulated time.
func (sim *Sim) WriteSpikes(excitFile, inhibFile string) error {
	if sim.State != Completed {
		return fmt.Errorf("%w: WriteSpikes in state %v", ErrOrdering, sim.State)
	}
	evs, err := sim.Kernel.CollectedEvents(sim.Net.ExcitSpikes)
	if err != nil {
		return err
	}
	if err = SpikeTable(evs).SaveCSV(core.Filename(excitFile), table.Tab, table.Headers); err != nil {
		return err
	}
	evs, err = sim.Kernel.CollectedEvents(sim.Net.InhibSpikes)
	if err != nil {
		return err
	}
	return SpikeTable(evs).SaveCSV(core.Filename(inhibFile), table.Tab, table.Headers)
}

// Report writes the end-of-run console report: network size, synapse
// count, output rates, and build / simulation wall-clock times.
func (sim *Sim) Report(w io.Writer) error {
	exc, inh, err := sim.Rates()
	if err != nil {
		return err
	}
	dv := &sim.Net.Derived
	fmt.Fprintf(w, "Brunel network simulation\n")
	fmt.Fprintf(w, "Number of neurons : %d\n", dv.N)
	fmt.Fprintf(w, "Number of synapses: %d\n", dv.NSyn(sim.Net.Params.Nrec))
	fmt.Fprintf(w, "Excitatory rate   : %.2f Hz\n", exc)
	fmt.Fprintf(w, "Inhibitory rate   : %.2f Hz\n", inh)
	fmt.Fprintf(w, "Building time     : %.2f s\n", sim.BuildTime.Total.Seconds())
	fmt.Fprintf(w, "Simulation time   : %.2f s\n", sim.SimCPUTime.Total.Seconds())
	return nil
}

// ReportTable returns the end-of-run report as a one-row table, for
// saving alongside the spike logs.
func (sim *Sim) ReportTable() (*table.Table, error) {
	exc, inh, err := sim.Rates()
	if err != nil {
		return nil, err
	}
	dv := &sim.Net.Derived
	dt := &table.Table{}
	dt.AddIntColumn("Neurons")
	dt.AddIntColumn("Synapses")
	dt.AddFloat32Column("ExcitRateHz")
	dt.AddFloat32Column("InhibRateHz")
	dt.AddFloat32Column("BuildSecs")
	dt.AddFloat32Column("SimSecs")
	dt.SetNumRows(1)
	dt.SetFloat("Neurons", 0, float64(dv.N))
	dt.SetFloat("Synapses", 0, float64(dv.NSyn(sim.Net.Params.Nrec)))
	dt.SetFloat("ExcitRateHz", 0, float64(exc))
	dt.SetFloat("InhibRateHz", 0, float64(inh))
	dt.SetFloat("BuildSecs", 0, sim.BuildTime.Total.Seconds())
	dt.SetFloat("SimSecs", 0, sim.SimCPUTime.Total.Seconds())
	return dt, nil
}
