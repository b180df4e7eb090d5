package testcase

import (
	"testing"

	"kat/internal/testutil"
	appErr "kat/pkg/errors"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		expr string
		want []uint64
	}{
		{"1", []uint64{1}},
		{"1,3-5", []uint64{1, 3, 4, 5}},
		{" 2 - 3 , 7 ", []uint64{2, 3, 7}},
		{"4-4", []uint64{4}},
		{"3,1,3", []uint64{1, 3}},
		{"0", []uint64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := ParseFilter(tt.expr)
			testutil.MustNoError(t, err)
			testutil.AssertFalse(t, f.IsAll(), "explicit filter should not select all")
			testutil.AssertDeepEqual(t, f.IDs(), tt.want)
		})
	}
}

func TestParseFilterAll(t *testing.T) {
	for _, expr := range []string{"all", "", "  "} {
		f, err := ParseFilter(expr)
		testutil.MustNoError(t, err)
		testutil.AssertTrue(t, f.IsAll(), "expected all filter for "+expr)
		testutil.AssertTrue(t, f.Contains(12345), "all filter should contain any id")
	}
}

func TestParseFilterRejectsMalformed(t *testing.T) {
	for _, expr := range []string{"a", "1,", ",1", "5-3", "1-", "-2", "1-2-3", "1;2", "1.5", "0-1000000"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseFilter(expr)
			testutil.AssertCode(t, err, appErr.InvalidFilter)
		})
	}
}
