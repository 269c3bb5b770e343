// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brunel

import "cogentcore.org/core/base/errors"

// Error kinds for the construction and simulation phases.  Everything
// fatal happens before any kernel resource is created: once the network
// is built, only recording I/O can fail, and that never unwinds network
// state or already-elapsed simulated time.
var (
	// ErrConfig is an invalid or inconsistent parameter configuration,
	// e.g. an in-degree exceeding the source population size, or a
	// non-positive time constant.  Fatal: raised before any kernel
	// resource is created.
	ErrConfig = errors.New("brunel: invalid configuration")

	// ErrOrdering is a configuration-order violation, e.g. setting
	// kernel limits after nodes exist, or connecting before the
	// populations are built.  Fatal: raised immediately.
	ErrOrdering = errors.New("brunel: configuration order")

	// ErrCapacity indicates a connection reservation was undersized and
	// storage had to grow during construction.  Non-fatal: logged only,
	// performance impact but no correctness issue.
	ErrCapacity = errors.New("brunel: reserved capacity exceeded")
)
