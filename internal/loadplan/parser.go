package loadplan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/CrateStack/internal/model"
)

// PlanStep is a single parsed instruction from a load plan.
type PlanStep struct {
	Number      int
	ItemName    string
	Position    model.Position
	Dim         model.Dimension
	Rotation    model.Rotation
	HasRotation bool    // false when the profile omitted the orientation code
	Load        float64 // running load in kg, 0 when the profile omitted it
}

// Step lines look like:
//
//	STEP 3: Akku -> (0.0, 0.0, 7.0) size 48.0 x 28.0 x 3.5 [WHD] load 0.3 kg
//
// with an optional checkbox prefix and optional orientation and load parts.
var stepRe = regexp.MustCompile(`^(?:\[[ xX]\]\s+)?STEP\s+(\d+):\s+(.+?)\s+->\s+\((-?[\d.]+),\s*(-?[\d.]+),\s*(-?[\d.]+)\)\s+size\s+([\d.]+)\s+x\s+([\d.]+)\s+x\s+([\d.]+)(?:\s+\[(\w+)\])?(?:\s+load\s+([\d.]+)\s+kg)?\s*$`)

// ParsePlan parses load plan text back into structured steps. Comment lines,
// headers and anything else that does not look like a step are skipped.
func ParsePlan(text string) []PlanStep {
	var steps []PlanStep

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := stepRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		coords := make([]float64, 6)
		valid := true
		for i := range coords {
			v, err := strconv.ParseFloat(m[3+i], 64)
			if err != nil {
				valid = false
				break
			}
			coords[i] = v
		}
		if !valid {
			continue
		}

		step := PlanStep{
			Number:   num,
			ItemName: m[2],
			Position: model.Position{X: coords[0], Y: coords[1], Z: coords[2]},
			Dim:      model.Dimension{Width: coords[3], Height: coords[4], Depth: coords[5]},
		}

		if m[9] != "" {
			if rot, ok := parseRotation(m[9]); ok {
				step.Rotation = rot
				step.HasRotation = true
			}
		}
		if m[10] != "" {
			if load, err := strconv.ParseFloat(m[10], 64); err == nil {
				step.Load = load
			}
		}

		steps = append(steps, step)
	}

	return steps
}

// parseRotation maps an orientation code back to its Rotation value.
func parseRotation(code string) (model.Rotation, bool) {
	for _, r := range model.AllRotations {
		if r.String() == code {
			return r, true
		}
	}
	return model.RotationWHD, false
}
