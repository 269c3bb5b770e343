// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brunel

import (
	"fmt"
	"strings"
	"unsafe"

	"cogentcore.org/core/base/timer"
	"github.com/c2h5oh/datasize"
)

// Network is the Brunel two-population network: it owns the populations,
// the external Poisson sources, the spike collectors, and the shared
// construction random stream, and builds all of them in a kernel.
type Network struct {

	// overall name of the network
	Nm string

	// model input parameters -- set before Build, immutable afterward
	Params Params

	// quantities derived from Params at the start of Build
	Derived Derived

	// seed for the shared connectivity random stream -- the same seed
	// and parameters reproduce the identical graph
	ConnectSeed int64 `default:"12345"`

	// excitatory population, created first
	Excit Population

	// inhibitory population, created second
	Inhib Population

	// external Poisson source driving the excitatory population
	ExtExcit NodeID

	// external Poisson source driving the inhibitory population
	ExtInhib NodeID

	// spike collector wired to the first Nrec excitatory neurons
	ExcitSpikes NodeID

	// spike collector wired to the first Nrec inhibitory neurons
	InhibSpikes NodeID

	// convergent connector holding the shared random stream
	Conn *Connector

	// timers for each major build phase
	FunTimes map[string]*timer.Time
}

// NewNetwork returns a new network with default parameters and the
// given name.
func NewNetwork(name string) *Network {
	nt := &Network{Nm: name}
	nt.Params.Defaults()
	nt.FunTimes = make(map[string]*timer.Time)
	return nt
}

func (nt *Network) Name() string { return nt.Nm }

// AllNeurons returns the ids of every neuron in the network, excitatory
// population first, each in creation order.  Read-only view for
// algorithms that iterate over both populations.
func (nt *Network) AllNeurons() []NodeID {
	all := make([]NodeID, 0, nt.Excit.Len()+nt.Inhib.Len())
	all = append(all, nt.Excit.Units...)
	all = append(all, nt.Inhib.Units...)
	return all
}

// Build constructs the complete network in the kernel: both populations
// (with connection storage reserved up front), the two external Poisson
// sources, the two spike collectors, the full random connectivity, and
// the recording wiring.  The kernel limits must already be set; dt is
// the kernel resolution, used as the one-step recording delay.  Any
// failure aborts the build: no partial network is usable.
func (nt *Network) Build(k Kernel, dt float32) error {
	dv, err := nt.Params.Derive()
	if err != nil {
		return err
	}
	// in-degrees and the recorded subset must fit the populations --
	// checked here so no configuration error can reach the kernel
	if dv.CE > dv.NE {
		return fmt.Errorf("%w: CE %d exceeds excitatory population size %d", ErrConfig, dv.CE, dv.NE)
	}
	if dv.CI > dv.NI {
		return fmt.Errorf("%w: CI %d exceeds inhibitory population size %d", ErrConfig, dv.CI, dv.NI)
	}
	if nt.Params.Nrec > dv.NI || nt.Params.Nrec > dv.NE {
		return fmt.Errorf("%w: Nrec %d exceeds a population size (NE %d, NI %d)", ErrConfig, nt.Params.Nrec, dv.NE, dv.NI)
	}
	nt.Derived = dv
	nt.Conn = NewConnector(nt.ConnectSeed)

	pr := &nt.Params
	cfg := pr.NeuronConfig()
	c := dv.CE + dv.CI

	nt.FunTimerStart("Populations")
	nt.Excit.Name = "Excit"
	if err = nt.Excit.Build(k, cfg, dv.NE, c); err != nil {
		return err
	}
	nt.Inhib.Name = "Inhib"
	if err = nt.Inhib.Build(k, cfg, dv.NI, c); err != nil {
		return err
	}
	nt.FunTimerStop("Populations")

	nt.FunTimerStart("Devices")
	if nt.ExtExcit, err = k.CreatePoissonSource(dv.PRate); err != nil {
		return err
	}
	k.ReserveConnections(nt.ExtExcit, dv.NE)
	if nt.ExtInhib, err = k.CreatePoissonSource(dv.PRate); err != nil {
		return err
	}
	k.ReserveConnections(nt.ExtInhib, dv.NI)
	if nt.ExcitSpikes, err = k.CreateSpikeCollector(&CollectorConfig{Label: "Excit"}); err != nil {
		return err
	}
	if nt.InhibSpikes, err = k.CreateSpikeCollector(&CollectorConfig{Label: "Inhib"}); err != nil {
		return err
	}
	nt.FunTimerStop("Devices")

	nt.FunTimerStart("Connect")
	if err = nt.ConnectAll(k); err != nil {
		return err
	}
	nt.FunTimerStop("Connect")

	nt.FunTimerStart("Record")
	if err = WireRecorders(k, &nt.Excit, nt.ExcitSpikes, pr.Nrec, dt); err != nil {
		return err
	}
	if err = WireRecorders(k, &nt.Inhib, nt.InhibSpikes, pr.Nrec, dt); err != nil {
		return err
	}
	nt.FunTimerStop("Record")
	return nil
}

// ConnectAll creates the full random connectivity: every neuron in the
// network, excitatory targets first then inhibitory, each in creation
// order, receives exactly CE synapses from distinct excitatory sources
// at weight JE, CI synapses from distinct inhibitory sources at weight
// JI = -G*JE, and one synapse from the Poisson source of its own
// population at weight JE (the external drive is always excitatory,
// regardless of the target population).
//
// In-degrees exceeding the source population sizes fail here, before
// the first connection is made.
func (nt *Network) ConnectAll(k Kernel) error {
	dv := &nt.Derived
	if dv.CE > nt.Excit.Len() {
		return fmt.Errorf("%w: CE %d exceeds excitatory population size %d", ErrConfig, dv.CE, nt.Excit.Len())
	}
	if dv.CI > nt.Inhib.Len() {
		return fmt.Errorf("%w: CI %d exceeds inhibitory population size %d", ErrConfig, dv.CI, nt.Inhib.Len())
	}
	for _, tg := range nt.Excit.Units {
		if err := nt.connectOne(k, tg, nt.ExtExcit); err != nil {
			return err
		}
	}
	for _, tg := range nt.Inhib.Units {
		if err := nt.connectOne(k, tg, nt.ExtInhib); err != nil {
			return err
		}
	}
	return nil
}

// connectOne wires the full in-degree of one target neuron.
func (nt *Network) connectOne(k Kernel, tg, ext NodeID) error {
	dv := &nt.Derived
	pr := &nt.Params
	if err := nt.Conn.Convergent(k, &nt.Excit, tg, dv.CE, dv.JE, pr.Delay); err != nil {
		return err
	}
	if err := nt.Conn.Convergent(k, &nt.Inhib, tg, dv.CI, dv.JI, pr.Delay); err != nil {
		return err
	}
	return k.Connect(ext, tg, Spike, dv.JE, pr.Delay)
}

// FunTimerStart starts a named function timer, creating it if needed.
func (nt *Network) FunTimerStart(fun string) {
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops a named function timer -- timer must already exist.
func (nt *Network) FunTimerStop(fun string) {
	nt.FunTimes[fun].Stop()
}

// SizeReport returns a string report of the number of neurons and
// synapses in the built network and the approximate memory the synapse
// storage occupies in the kernel.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	dv := &nt.Derived
	nsyn := dv.NSyn(nt.Params.Nrec)
	// source id, target id, weight, delay per stored connection
	synMem := nsyn * int(unsafe.Sizeof(NodeID(0))*2+8)
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Syns: %d\t SynMem: %v\n",
		nt.Nm, dv.N, nsyn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}
