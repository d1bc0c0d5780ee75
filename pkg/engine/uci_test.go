package engine

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestApplyInfoLine_SingleLine(t *testing.T) {
	res := &Result{Depth: 12}
	applyInfoLine(res, "info depth 12 seldepth 18 multipv 1 score cp 35 nodes 12345 nps 100000 pv e2e4 e7e5 g1f3")

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}
	got := res.Lines[0]
	if got.ScoreCP != 35 || got.Mate != 0 {
		t.Errorf("unexpected score: %+v", got)
	}
	if !reflect.DeepEqual(got.Moves, []string{"e2e4", "e7e5", "g1f3"}) {
		t.Errorf("unexpected pv: %v", got.Moves)
	}
}

func TestApplyInfoLine_DeeperIterationSupersedes(t *testing.T) {
	res := &Result{Depth: 12}
	applyInfoLine(res, "info depth 6 multipv 1 score cp 10 pv d2d4")
	applyInfoLine(res, "info depth 12 multipv 1 score cp 42 pv e2e4 e7e5")

	if res.Lines[0].ScoreCP != 42 {
		t.Errorf("expected final iteration to win, got %+v", res.Lines[0])
	}
}

func TestApplyInfoLine_MultiPV(t *testing.T) {
	res := &Result{Depth: 10}
	applyInfoLine(res, "info depth 10 multipv 2 score cp -15 pv d2d4 d7d5")
	applyInfoLine(res, "info depth 10 multipv 1 score cp 20 pv e2e4 c7c5")

	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(res.Lines))
	}
	if res.Lines[0].ScoreCP != 20 || res.Lines[1].ScoreCP != -15 {
		t.Errorf("multipv slots misassigned: %+v", res.Lines)
	}
}

func TestApplyInfoLine_MateScore(t *testing.T) {
	res := &Result{Depth: 10}
	applyInfoLine(res, "info depth 10 multipv 1 score mate 3 pv d1h5 g6h5 f3f7")

	got := res.Lines[0]
	if got.Mate != 3 || !got.IsMate() {
		t.Errorf("expected mate in 3, got %+v", got)
	}
}

func TestApplyInfoLine_IgnoresChatter(t *testing.T) {
	res := &Result{Depth: 10}
	applyInfoLine(res, "info depth 10 currmove e2e4 currmovenumber 1")
	applyInfoLine(res, "info nodes 500000 nps 1000000 hashfull 12")

	if len(res.Lines) != 0 {
		t.Errorf("lines without a pv must be ignored, got %+v", res.Lines)
	}
}

func TestReadOutput_ReleasedAfterKill(t *testing.T) {
	// A killed process may leave unread output behind. With the line buffer
	// full and nobody draining it, the pump must still exit once the done
	// channel closes instead of blocking on the send forever.
	p := &uciProcess{
		lines: make(chan string, 1),
		done:  make(chan struct{}),
	}
	output := strings.Repeat("info depth 1 nodes 100\n", 64)

	finished := make(chan struct{})
	go func() {
		p.readOutput(strings.NewReader(output))
		close(finished)
	}()

	close(p.done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("output pump still blocked after done closed")
	}
}

func TestLine_Value(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want int
	}{
		{"plain centipawns", Line{ScoreCP: 150}, 150},
		{"negative centipawns", Line{ScoreCP: -75}, -75},
		{"mate for mover", Line{Mate: 2}, MateScore - 2},
		{"shorter mate is worth more", Line{Mate: 1}, MateScore - 1},
		{"mate against mover", Line{Mate: -3}, -MateScore + 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Value(); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResult_Best(t *testing.T) {
	empty := &Result{}
	if empty.Best() != nil {
		t.Error("Best of empty result should be nil")
	}

	res := &Result{Lines: []Line{{ScoreCP: 5}, {ScoreCP: -5}}}
	if res.Best().ScoreCP != 5 {
		t.Errorf("Best should return the top line, got %+v", res.Best())
	}
}
