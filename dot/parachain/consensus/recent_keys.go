// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"golang.org/x/exp/slices"
)

// sessions change infrequently and usually only the current and the last
// session are relevant. The third slot is an error margin.
const recentSessions = 3

// RecentSessionKeys keeps the local session keys used most recently,
// oldest first. It is not safe for concurrent use.
type RecentSessionKeys struct {
	inner []parachaintypes.SessionKey
}

// Insert inserts a new session key. isNew is false when the key was already
// known, in which case nothing changes. When the set is full, the oldest key
// is pushed out and returned.
func (r *RecentSessionKeys) Insert(key parachaintypes.SessionKey) (isNew bool, evicted *parachaintypes.SessionKey) {
	if slices.Contains(r.inner, key) {
		return false, nil
	}

	if len(r.inner) == recentSessions {
		old := r.inner[0]
		evicted = &old
		r.inner = slices.Delete(r.inner, 0, 1)
	}

	r.inner = append(r.inner, key)
	return true, evicted
}

// Remove removes the key. Removing an unknown key does nothing.
func (r *RecentSessionKeys) Remove(key parachaintypes.SessionKey) {
	kept := r.inner[:0]
	for _, k := range r.inner {
		if k != key {
			kept = append(kept, k)
		}
	}
	r.inner = kept
}

// AsSlice returns a copy of the keys, oldest first.
func (r *RecentSessionKeys) AsSlice() []parachaintypes.SessionKey {
	return slices.Clone(r.inner)
}

// Len returns the number of keys.
func (r *RecentSessionKeys) Len() int {
	return len(r.inner)
}
