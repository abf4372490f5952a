package service

import (
	"reflect"
	"testing"
)

func TestNextPosition(t *testing.T) {
	cases := []struct {
		name      string
		positions []int
		want      int
	}{
		{"empty", nil, 0},
		{"dense", []int{0, 1, 2}, 3},
		{"gapped after deletions", []int{0, 3, 7}, 8},
		{"single", []int{5}, 6},
	}
	for _, tc := range cases {
		if got := nextPosition(tc.positions); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestAssignPositionsSkipsForeignIDs(t *testing.T) {
	inScope := map[int64]bool{1: true, 2: true, 3: true}
	got := make(map[int64]int)
	err := assignPositions([]int64{3, 99, 1, 2}, inScope, func(id int64, pos int) error {
		got[id] = pos
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// id 99 is out of scope and must not consume a position
	want := map[int64]int{3: 0, 1: 1, 2: 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAssignPositionsPartialList(t *testing.T) {
	inScope := map[int64]bool{1: true, 2: true, 3: true}
	got := make(map[int64]int)
	err := assignPositions([]int64{2}, inScope, func(id int64, pos int) error {
		got[id] = pos
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 || got[2] != 0 {
		t.Fatalf("expected only id 2 at position 0, got %v", got)
	}
}
