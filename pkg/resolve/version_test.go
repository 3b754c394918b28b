package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "numeric segments beat lexicographic order", a: "1.10.0", b: "1.2.0", want: 1},
		{name: "patch increment", a: "1.2.1", b: "1.2.0", want: 1},
		{name: "older", a: "1.0", b: "2.0", want: -1},
		{name: "equal", a: "1.2.0", b: "1.2.0", want: 0},
		{name: "short form pads to equal", a: "2.0", b: "2.0.0", want: 0},
		{name: "snapshot loses structural tie", a: "2.0-SNAPSHOT", b: "2.0", want: -1},
		{name: "release beats snapshot", a: "1.2.0", b: "1.2.0-SNAPSHOT", want: 1},
		{name: "structural difference outranks snapshot rule", a: "2.1-SNAPSHOT", b: "2.0", want: 1},
		{name: "both snapshots tie", a: "1.0-SNAPSHOT", b: "1.0-SNAPSHOT", want: 0},
		{name: "non-coercible vs snapshot", a: "build-42", b: "nightly-SNAPSHOT", want: 1},
		{name: "both non-coercible undecided", a: "build-42", b: "build-43", want: 0},
		{name: "lowercase snapshot marker", a: "2.0-snapshot", b: "2.0", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareVersions(tt.a, tt.b)
			switch {
			case tt.want > 0:
				assert.Positive(t, got)
			case tt.want < 0:
				assert.Negative(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}
