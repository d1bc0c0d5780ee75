package confidence

import "mercator-hq/gambit/pkg/config"

// Weights control how the three agreement deltas are folded into a score.
// EvalGap and ReplayGap multiply centipawn gaps; MoveChoice is a flat
// penalty applied when the deep and shallow searches pick different best
// moves. The coefficients are policy, not invariants, so they come from
// configuration and can be retuned at runtime.
type Weights struct {
	EvalGap    float64
	MoveChoice float64
	ReplayGap  float64
}

// WeightsFromConfig lifts the configured coefficients into a Weights value.
func WeightsFromConfig(cfg config.WeightsConfig) Weights {
	return Weights{
		EvalGap:    cfg.EvalGap,
		MoveChoice: cfg.MoveChoice,
		ReplayGap:  cfg.ReplayGap,
	}
}

// deltas holds the raw disagreement measurements for one position. All
// values are centipawns from the mover's perspective except moveChanged,
// which records whether the two searches picked different best moves.
type deltas struct {
	evalGap     int
	moveChanged bool
	replayGap   int
}

// score folds the deltas into a confidence value. Perfect agreement scores
// 100; every centipawn of disagreement and any change of plan pulls it
// down, clamped to [0, 100].
func (w Weights) score(d deltas) int {
	penalty := float64(d.evalGap)*w.EvalGap + float64(d.replayGap)*w.ReplayGap
	if d.moveChanged {
		penalty += w.MoveChoice
	}

	s := 100 - int(penalty)
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func absGap(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
