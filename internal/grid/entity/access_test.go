package entity

import (
	"reflect"
	"testing"
)

func TestComputeMask(t *testing.T) {
	tests := []struct {
		name string
		cols int
		rule AccessRule
		want EditMask
	}{
		{
			name: "all columns editable",
			cols: 3,
			rule: AccessRule{Mode: EditModeAll},
			want: EditMask{true, true, true},
		},
		{
			name: "zero value rule opens everything",
			cols: 2,
			rule: AccessRule{},
			want: EditMask{true, true},
		},
		{
			name: "single column",
			cols: 4,
			rule: AccessRule{Mode: EditModeSingleColumn, Column: 1},
			want: EditMask{false, true, false, false},
		},
		{
			name: "last column sentinel",
			cols: 3,
			rule: AccessRule{Mode: EditModeSingleColumn, Column: LastColumn},
			want: EditMask{false, false, true},
		},
		{
			name: "index past the width clamps to the last column",
			cols: 3,
			rule: AccessRule{Mode: EditModeSingleColumn, Column: 10},
			want: EditMask{false, false, true},
		},
		{
			name: "no columns",
			cols: 0,
			rule: AccessRule{Mode: EditModeSingleColumn, Column: 0},
			want: EditMask{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeMask(tc.cols, tc.rule)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEditMaskEditable(t *testing.T) {
	mask := EditMask{false, true}

	if mask.Editable(0) {
		t.Fatalf("column 0 should be read-only")
	}
	if !mask.Editable(1) {
		t.Fatalf("column 1 should be editable")
	}
	if mask.Editable(-1) || mask.Editable(2) {
		t.Fatalf("out-of-range columns should never be editable")
	}
}
