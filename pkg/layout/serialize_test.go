package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cardgrid/cardgrid/pkg/errors"
)

func TestPlanRoundTrip(t *testing.T) {
	original, err := PlanGrid(6, 2, testBounds)
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalPlan(original)
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}

	parsed, err := UnmarshalPlan(data)
	if err != nil {
		t.Fatalf("UnmarshalPlan: %v", err)
	}

	if parsed.Kind != original.Kind || parsed.Rows != original.Rows || parsed.Cols != original.Cols {
		t.Errorf("shape differs after round trip: %+v vs %+v", parsed, original)
	}
	if len(parsed.Cells) != len(original.Cells) {
		t.Fatalf("cells = %d, want %d", len(parsed.Cells), len(original.Cells))
	}
	for i := range parsed.Cells {
		for j := range parsed.Cells[i].Slots {
			if parsed.Cells[i].Slots[j] != original.Cells[i].Slots[j] {
				t.Errorf("cell %d slot %d differs", i, j)
			}
		}
	}
}

func TestUnmarshalPlanValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "InvalidJSON", input: `{not json}`},
		{name: "UnknownKind", input: `{"kind": "spiral"}`},
		{name: "SingleWithoutSlots", input: `{"kind": "single", "cells": []}`},
		{name: "GridTooSmall", input: `{"kind": "grid", "rows": 1, "cols": 1, "cells": [{"index":1},{"index":2}]}`},
		{name: "ComparisonWrongQuadrants", input: `{"kind": "comparison", "quadrants": [{"mode":"perm"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalPlan([]byte(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPlanFileRoundTrip(t *testing.T) {
	plan, err := PlanSingleExpansion(2, testBounds)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "plan.json")
	if err := WritePlanFile(plan, path); err != nil {
		t.Fatalf("WritePlanFile: %v", err)
	}

	read, err := ReadPlanFile(path)
	if err != nil {
		t.Fatalf("ReadPlanFile: %v", err)
	}
	if !read.IsSingle() || len(read.Cells) != 1 {
		t.Errorf("unexpected plan after read: %+v", read)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestReadPlanFileNotFound(t *testing.T) {
	_, err := ReadPlanFile("nonexistent.json")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("got %v, want NOT_FOUND", err)
	}
}
