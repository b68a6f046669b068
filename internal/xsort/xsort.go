// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xsort provides a small generic stable-sort-and-dedup helper used
// by the game package's option-list canonicalization, where the same
// sort-then-collapse-adjacent-equal-elements shape recurs for both left
// and right option lists.
package xsort

import "slices"

// SortAndDedup stably sorts s by less and collapses adjacent elements for
// which equal reports true, returning the compacted slice. s is sorted
// and may be overwritten in place, matching the semantics of
// slices.CompactFunc.
func SortAndDedup[S ~[]E, E any](s S, less func(a, b E) bool, equal func(a, b E) bool) S {
	slices.SortStableFunc(s, func(a, b E) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
	return slices.CompactFunc(s, equal)
}
