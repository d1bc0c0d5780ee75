package confidence

import (
	"testing"

	"mercator-hq/gambit/pkg/config"
)

func TestWeights_Score(t *testing.T) {
	w := Weights{EvalGap: 0.20, MoveChoice: 25, ReplayGap: 0.15}

	tests := []struct {
		name string
		d    deltas
		want int
	}{
		{"perfect agreement", deltas{}, 100},
		{"small eval gap", deltas{evalGap: 50}, 90},
		{"changed move only", deltas{moveChanged: true}, 75},
		{"replay drift only", deltas{replayGap: 100}, 85},
		{"all three combined", deltas{evalGap: 100, moveChanged: true, replayGap: 100}, 40},
		{"huge gap clamps at zero", deltas{evalGap: 2000}, 0},
		{"mate-sized gap clamps at zero", deltas{evalGap: 9990, moveChanged: true, replayGap: 9990}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.score(tt.d); got != tt.want {
				t.Errorf("score(%+v) = %d, want %d", tt.d, got, tt.want)
			}
		})
	}
}

func TestWeights_ZeroWeightsIgnoreDeltas(t *testing.T) {
	var w Weights
	if got := w.score(deltas{evalGap: 5000, moveChanged: true, replayGap: 5000}); got != 100 {
		t.Errorf("score with zero weights = %d, want 100", got)
	}
}

func TestWeightsFromConfig(t *testing.T) {
	w := WeightsFromConfig(config.WeightsConfig{EvalGap: 0.5, MoveChoice: 10, ReplayGap: 0.25})
	if w.EvalGap != 0.5 || w.MoveChoice != 10 || w.ReplayGap != 0.25 {
		t.Errorf("unexpected weights: %+v", w)
	}
}

func TestAbsGap(t *testing.T) {
	if absGap(30, -30) != 60 || absGap(-30, 30) != 60 || absGap(5, 5) != 0 {
		t.Error("absGap must be symmetric and zero on equal inputs")
	}
}
