// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"sort"

	"github.com/facette/natsort"
)

// Order returns a copy of files sorted by modification time, oldest first.
// Files sharing a timestamp keep a natural filename order.
func Order(files []VideoFile) []VideoFile {
	ordered := make([]VideoFile, len(files))
	copy(ordered, files)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.Before(b.ModTime)
		}
		return nameLess(a.Name, b.Name)
	})

	return ordered
}

// natsort.Compare answers true both ways for names differing only in
// leading zeros, so those fall back to byte order.
func nameLess(a, b string) bool {
	forward, backward := natsort.Compare(a, b), natsort.Compare(b, a)
	if forward == backward {
		return a < b
	}
	return forward
}
