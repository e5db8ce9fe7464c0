package estimate_test

import (
	"testing"

	"github.com/flowstage/xplat-exec-core/internal/estimate"
)

func TestTimeEstimateConstants(t *testing.T) {
	if !estimate.ZeroTime.IsExactly(0) {
		t.Fatal("ZeroTime should be exactly 0")
	}
	if !estimate.MinimumTime.IsExactly(1) {
		t.Fatal("MinimumTime should be exactly 1")
	}
}

func TestTimeEstimateString(t *testing.T) {
	cases := []struct {
		name string
		t    estimate.TimeEstimate
		want string
	}{
		{"sub-second", estimate.NewTime(estimate.New(100, 500, 0.8)), "(100ms .. 500ms, p=80.0%)"},
		{"seconds", estimate.NewTime(estimate.New(1000, 2500, 0.5)), "(1.000s .. 2.500s, p=50.0%)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.t.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
