// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brunel

import (
	"fmt"

	"cogentcore.org/core/base/randx"
)

// Connector performs convergent connections: for one target neuron, a
// fixed number of distinct sources is drawn uniformly at random without
// replacement from a source population, and one synapse is created per
// draw.  In-degree is fixed and uniform; out-degree is a random
// variable.
//
// All draws consume a single shared random stream in a fixed
// target-visitation order, so a given seed reproduces the identical
// graph bit for bit.  The stream is an explicit object here rather than
// a process-wide one, so a parallel build can substitute per-target
// sub-streams keyed by a stable index without touching the algorithm.
type Connector struct {

	// the shared random stream consumed by all draws
	Rand *randx.SysRand

	// scratch: per-source-unit guard for without-replacement sampling,
	// sized to the largest source population seen
	used []bool

	// scratch: source indexes drawn for the current target, kept so the
	// guard can be cleared without re-zeroing the whole slice
	drawn []int32
}

// NewConnector returns a Connector with its random stream seeded.
func NewConnector(seed int64) *Connector {
	return &Connector{Rand: randx.NewSysRand(seed)}
}

// Convergent connects n distinct source neurons drawn uniformly without
// replacement from src onto target, each with the given weight, delay,
// and spike event kind.  A draw equal to the target itself is rejected,
// so no self-synapse is ever created (for cross-population draws this
// cannot occur in the first place).  Draws for different targets are
// independent.
//
// n > len(src) is a configuration error: more distinct sources cannot
// be drawn than exist.
func (cn *Connector) Convergent(k Kernel, src *Population, target NodeID, n int, weight, delay float32) error {
	ns := src.Len()
	if n > ns {
		return fmt.Errorf("%w: in-degree %d exceeds %s population size %d", ErrConfig, n, src.Name, ns)
	}
	if n == ns {
		// the full population is drawn: if the target is in it, the
		// self-exclusion makes the draw unsatisfiable
		for _, id := range src.Units {
			if id == target {
				return fmt.Errorf("%w: in-degree %d with self-exclusion exceeds %s population size %d", ErrConfig, n, src.Name, ns)
			}
		}
	}
	if cap(cn.used) < ns {
		cn.used = make([]bool, ns)
	}
	used := cn.used[:ns]
	cn.drawn = cn.drawn[:0]
	var err error
	for len(cn.drawn) < n && err == nil {
		si := int32(cn.Rand.Intn(ns))
		if used[si] || src.Units[si] == target {
			continue
		}
		used[si] = true
		cn.drawn = append(cn.drawn, si)
		err = k.Connect(src.Units[si], target, Spike, weight, delay)
	}
	for _, si := range cn.drawn {
		used[si] = false
	}
	return err
}
