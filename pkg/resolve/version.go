package resolve

import (
	"strings"

	"github.com/hashicorp/go-version"
)

const snapshotMarker = "SNAPSHOT"

// CompareVersions orders two plugin version strings. It returns a positive
// value when a is newer than b, negative when older, and zero when the policy
// cannot tell them apart.
//
// Both strings are coerced into structured versions when possible and their
// numeric segments compared. Coercion failure on either side, or a structural
// tie, falls through to the snapshot rule: a version carrying the SNAPSHOT
// marker is a pre-release build and sorts strictly below one without it.
// Beyond that the order is left undecided so callers can keep input order.
func CompareVersions(a, b string) int {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	if errA == nil && errB == nil {
		if c := compareSegments(va.Segments(), vb.Segments()); c != 0 {
			return c
		}
	}

	snapA, snapB := isSnapshot(a), isSnapshot(b)
	switch {
	case snapA && !snapB:
		return -1
	case !snapA && snapB:
		return 1
	default:
		return 0
	}
}

func compareSegments(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var segA, segB int
		if i < len(a) {
			segA = a[i]
		}
		if i < len(b) {
			segB = b[i]
		}
		if segA != segB {
			if segA > segB {
				return 1
			}
			return -1
		}
	}
	return 0
}

func isSnapshot(v string) bool {
	return strings.Contains(strings.ToUpper(v), snapshotMarker)
}
