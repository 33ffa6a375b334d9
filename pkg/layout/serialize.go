package layout

import (
	"encoding/json"
	"os"

	"github.com/cardgrid/cardgrid/pkg/errors"
)

// MarshalPlan serializes a Plan to pretty-printed JSON bytes.
func MarshalPlan(p Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// UnmarshalPlan deserializes JSON bytes into a Plan.
// Validates that required fields are present for the plan kind.
func UnmarshalPlan(data []byte) (Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return Plan{}, errors.Wrap(errors.ErrCodeInvalidPlan, err, "unmarshal plan")
	}

	switch p.Kind {
	case KindSingle:
		if len(p.Cells) != 1 || len(p.Cells[0].Slots) == 0 {
			return Plan{}, errors.New(errors.ErrCodeInvalidPlan,
				"single plan must contain exactly one cell with slots")
		}
	case KindGrid:
		if len(p.Cells) > 0 && p.Rows*p.Cols < len(p.Cells) {
			return Plan{}, errors.New(errors.ErrCodeInvalidPlan,
				"grid plan %dx%d cannot hold %d cells", p.Rows, p.Cols, len(p.Cells))
		}
	case KindComparison:
		if len(p.Quadrants) > 0 && len(p.Quadrants) != 4 {
			return Plan{}, errors.New(errors.ErrCodeInvalidPlan,
				"comparison plan must contain four quadrants, got %d", len(p.Quadrants))
		}
	default:
		return Plan{}, errors.New(errors.ErrCodeInvalidPlan, "unknown plan kind %q", p.Kind)
	}

	return p, nil
}

// WritePlanFile writes a Plan to a JSON file.
func WritePlanFile(p Plan, path string) error {
	data, err := MarshalPlan(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlanFile reads a Plan from a JSON file.
func ReadPlanFile(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
	}
	return UnmarshalPlan(data)
}
