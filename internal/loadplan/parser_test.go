package loadplan

import (
	"testing"

	"github.com/piwi3910/CrateStack/internal/model"
)

func TestParsePlan_RoundTrip(t *testing.T) {
	gen := New(newTestSettings())
	plan := gen.GenerateBin(newTestBinResult(), 1)

	steps := ParsePlan(plan)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}

	first := steps[0]
	if first.Number != 1 {
		t.Errorf("expected step number 1, got %d", first.Number)
	}
	if first.ItemName != "Widget" {
		t.Errorf("expected item Widget, got %q", first.ItemName)
	}
	if first.Position != (model.Position{X: 0, Y: 0, Z: 0}) {
		t.Errorf("unexpected position %v", first.Position)
	}
	if first.Dim != (model.Dimension{Width: 30, Height: 20, Depth: 10}) {
		t.Errorf("unexpected dimensions %v", first.Dim)
	}
	if !first.HasRotation || first.Rotation != model.RotationWHD {
		t.Errorf("expected rotation WHD, got %v (has=%v)", first.Rotation, first.HasRotation)
	}
	if first.Load != 2.5 {
		t.Errorf("expected load 2.5, got %g", first.Load)
	}

	second := steps[1]
	if second.ItemName != "Gadget" {
		t.Errorf("expected item Gadget, got %q", second.ItemName)
	}
	if second.Position.X != 30 {
		t.Errorf("expected x=30, got %g", second.Position.X)
	}
	if second.Load != 4.0 {
		t.Errorf("expected running load 4.0, got %g", second.Load)
	}
}

func TestParsePlan_ChecklistRoundTrip(t *testing.T) {
	settings := newTestSettings()
	settings.PlanProfile = "Checklist"
	gen := New(settings)
	plan := gen.GenerateBin(newTestBinResult(), 1)

	steps := ParsePlan(plan)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps from checklist plan, got %d", len(steps))
	}
	if steps[0].ItemName != "Widget" {
		t.Errorf("expected item Widget, got %q", steps[0].ItemName)
	}
}

func TestParsePlan_TickedCheckbox(t *testing.T) {
	steps := ParsePlan("[x] STEP 4: Box -> (1.0, 2.0, 3.0) size 10.0 x 20.0 x 30.0 [DHW] load 7.5 kg")
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}

	s := steps[0]
	if s.Number != 4 {
		t.Errorf("expected step number 4, got %d", s.Number)
	}
	if s.Position != (model.Position{X: 1, Y: 2, Z: 3}) {
		t.Errorf("unexpected position %v", s.Position)
	}
	if s.Rotation != model.RotationDHW {
		t.Errorf("expected DHW, got %v", s.Rotation)
	}
	if s.Load != 7.5 {
		t.Errorf("expected load 7.5, got %g", s.Load)
	}
}

func TestParsePlan_NoRotationOrLoad(t *testing.T) {
	steps := ParsePlan("STEP 2: Thing -> (0, 0, 0) size 5 x 5 x 5")
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].HasRotation {
		t.Error("expected HasRotation=false for plain step")
	}
	if steps[0].Load != 0 {
		t.Errorf("expected zero load, got %g", steps[0].Load)
	}
}

func TestParsePlan_ItemNameWithSpaces(t *testing.T) {
	steps := ParsePlan("STEP 1: Euro Pallet Box -> (0.0, 0.0, 0.0) size 120.0 x 80.0 x 100.0 [WHD] load 12.0 kg")
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].ItemName != "Euro Pallet Box" {
		t.Errorf("expected multi-word name, got %q", steps[0].ItemName)
	}
}

func TestParsePlan_SkipsCommentsAndHeaders(t *testing.T) {
	text := `# CrateStack Load Plan - Bin 1 (Crate)
# Bin: 100.0 x 60.0 x 40.0, max load 50.0 kg

LOAD PLAN

STEP 1: Widget -> (0.0, 0.0, 0.0) size 30.0 x 20.0 x 10.0 [WHD] load 2.5 kg

END OF PLAN
`
	steps := ParsePlan(text)
	if len(steps) != 1 {
		t.Fatalf("expected exactly 1 step, got %d", len(steps))
	}
}

func TestParsePlan_IgnoresMalformedLines(t *testing.T) {
	text := `STEP one: Bad -> (0, 0, 0) size 1 x 1 x 1
STEP 1: Missing arrow (0, 0, 0) size 1 x 1 x 1
STEP 2: NoSize -> (0, 0, 0)
just some text
`
	steps := ParsePlan(text)
	if len(steps) != 0 {
		t.Fatalf("expected 0 steps from malformed input, got %d", len(steps))
	}
}

func TestParsePlan_UnknownRotationCode(t *testing.T) {
	steps := ParsePlan("STEP 1: Box -> (0, 0, 0) size 1 x 2 x 3 [QQQ]")
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].HasRotation {
		t.Error("unknown orientation code should leave HasRotation=false")
	}
}

func TestParsePlan_Empty(t *testing.T) {
	if steps := ParsePlan(""); len(steps) != 0 {
		t.Errorf("expected no steps from empty input, got %d", len(steps))
	}
}

func TestParseRotationCodes(t *testing.T) {
	for _, r := range model.AllRotations {
		got, ok := parseRotation(r.String())
		if !ok || got != r {
			t.Errorf("parseRotation(%q) = %v, ok=%v", r.String(), got, ok)
		}
	}
	if _, ok := parseRotation("XYZ"); ok {
		t.Error("expected parseRotation to reject unknown code")
	}
}
