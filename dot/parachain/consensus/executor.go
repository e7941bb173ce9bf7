// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import "golang.org/x/sync/errgroup"

// GoroutineExecutor runs each task in its own goroutine.
// The zero value is ready to use.
type GoroutineExecutor struct {
	group errgroup.Group
}

// Spawn runs the task in a new goroutine.
func (e *GoroutineExecutor) Spawn(task func()) {
	e.group.Go(func() error {
		task()
		return nil
	})
}

// Wait blocks until every spawned task returns.
func (e *GoroutineExecutor) Wait() {
	_ = e.group.Wait()
}
