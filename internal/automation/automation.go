package automation

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/interact"
	"github.com/san-kum/cubesim/internal/logging"
	"github.com/san-kum/cubesim/internal/metrics"
)

// Scenario defines a scripted sequence of cube actions
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario: action names as used in
// the key bindings, applied in order.
type ScenarioStep struct {
	Actions []string `yaml:"actions"`
	SaveAs  string   `yaml:"save_as"`
}

// StepResult records what a step did and the metrics observed over it.
type StepResult struct {
	Step    int
	SaveAs  string
	Turns   []string
	Metrics map[string]float64
}

// StepError wraps a failure with the step it happened in.
type StepError struct {
	Step    int
	Action  string
	Wrapped error
}

func (e *StepError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("step %d (%s): %v", e.Step, e.Action, e.Wrapped)
	}
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// StepFunc is called after each step while the session still holds that
// step's state.
type StepFunc func(StepResult) error

// RunScenario executes all steps in order against session. Cancelling ctx
// stops between steps and returns the results so far. onStep may be nil.
func RunScenario(ctx context.Context, scenario *Scenario, session *interact.Session, onStep StepFunc) ([]StepResult, error) {
	log := logging.Logger()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, &StepError{Step: i + 1, Wrapped: err}
		}
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps))

		std := metrics.Standard()
		observe := func() {
			for _, m := range std {
				m.Observe(session.Store)
			}
		}
		observe()

		turns := make([]string, 0, len(step.Actions))
		for _, name := range step.Actions {
			a, ok := interact.ParseAction(name)
			if !ok {
				return results, &StepError{Step: i + 1, Action: name, Wrapped: interact.ErrUnknownAction}
			}
			session.Apply(a)
			turns = append(turns, name)
			observe()
		}

		res := StepResult{
			Step:    i + 1,
			SaveAs:  step.SaveAs,
			Turns:   turns,
			Metrics: make(map[string]float64, len(std)),
		}
		for _, m := range std {
			res.Metrics[m.Name()] = m.Value()
		}
		results = append(results, res)
		if onStep != nil {
			if err := onStep(res); err != nil {
				return results, &StepError{Step: i + 1, Wrapped: err}
			}
		}
	}

	return results, nil
}

// DriftConfig defines the per-face drift study: each face is turned
// Cycles full revolutions on its own fresh cube.
type DriftConfig struct {
	Cycles    int
	Angle     float32
	Scale     float32
	Tolerance float64
}

// DriftResult holds the errors measured on one face's cube
type DriftResult struct {
	Face          cube.Face
	Orthogonality []float64 // per turn
	Drift         []float64 // per turn
	MaxOrtho      float64
	MaxDrift      float64
	Consistency   float64
	Stable        bool // both maxima within tolerance
}

// RunDrift turns every face on its own cube concurrently and records how
// far orientations and positions wander from the lattice. Results are in
// cube.Faces order.
func RunDrift(ctx context.Context, cfg DriftConfig) ([]DriftResult, error) {
	if cfg.Cycles <= 0 {
		return nil, fmt.Errorf("cycles must be positive, got %d", cfg.Cycles)
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	angle := cfg.Angle
	if angle == 0 {
		angle = cube.QuarterTurn
	}

	results := make([]DriftResult, len(cube.Faces))
	errs := make([]error, len(cube.Faces))

	var wg sync.WaitGroup
	for i, f := range cube.Faces {
		wg.Add(1)
		go func(idx int, face cube.Face) {
			defer wg.Done()
			results[idx], errs[idx] = driftFace(ctx, face, scale, angle, cfg)
		}(i, f)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func driftFace(ctx context.Context, face cube.Face, scale, angle float32, cfg DriftConfig) (DriftResult, error) {
	store := cube.New(scale)
	turner := cube.NewTurner(store)
	turner.SetAngle(angle)
	perCycle := int(360 / turner.Angle())

	ortho := metrics.NewOrthogonality()
	drift := metrics.NewLatticeDrift()
	slots := metrics.NewSlotConsistency()
	res := DriftResult{Face: face}

	for c := 0; c < cfg.Cycles; c++ {
		if err := ctx.Err(); err != nil {
			return DriftResult{}, err
		}
		for i := 0; i < perCycle; i++ {
			turner.TurnFace(face)
			ortho.Observe(store)
			drift.Observe(store)
			slots.Observe(store)
			res.Orthogonality = append(res.Orthogonality, ortho.Current())
			res.Drift = append(res.Drift, drift.Current())
		}
	}

	res.MaxOrtho = ortho.Value()
	res.MaxDrift = drift.Value()
	res.Consistency = slots.Value()
	res.Stable = res.MaxOrtho <= cfg.Tolerance && res.MaxDrift <= cfg.Tolerance
	logging.Logger().Debug("face drift", "face", face, "turns", len(res.Drift), "max_ortho", res.MaxOrtho, "max_drift", res.MaxDrift)
	return res, nil
}

// Worst merges per-turn series by taking the largest error at each turn.
func Worst(results []DriftResult) (ortho, drift []float64) {
	for _, r := range results {
		for i := range r.Orthogonality {
			if i >= len(ortho) {
				ortho = append(ortho, r.Orthogonality[i])
				drift = append(drift, r.Drift[i])
				continue
			}
			ortho[i] = max(ortho[i], r.Orthogonality[i])
			drift[i] = max(drift[i], r.Drift[i])
		}
	}
	return ortho, drift
}

// DriftStats counts stable and unstable faces
func DriftStats(results []DriftResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
