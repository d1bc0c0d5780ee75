package tactics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/notnil/chess"

	"mercator-hq/gambit/pkg/config"
	"mercator-hq/gambit/pkg/engine"
)

func testTacticsConfig() config.TacticsConfig {
	return config.TacticsConfig{
		DefenseDepth:   12,
		MaxReplies:     12,
		MaxExchangePly: 16,
		DecisiveScore:  800,
	}
}

// fakeOracle scripts Submit by FEN. Positions without a script get a flat
// quiet evaluation so only the interesting calls need scripting.
type fakeOracle struct {
	mu      sync.Mutex
	calls   int
	byFEN   map[string]*engine.Result
	failAll bool
}

func (f *fakeOracle) Submit(_ context.Context, fen string, depth, _ int) (*engine.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failAll {
		return nil, &engine.TerminatedError{Stage: "search"}
	}
	if res, ok := f.byFEN[fen]; ok {
		return res, nil
	}
	return &engine.Result{FEN: fen, Depth: depth}, nil
}

func (f *fakeOracle) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quietLine(move string, cp int) *engine.Result {
	return &engine.Result{BestMove: move, Lines: []engine.Line{{ScoreCP: cp, Moves: []string{move}}}}
}

func mateLine(moves []string, in int) *engine.Result {
	return &engine.Result{BestMove: moves[0], Lines: []engine.Line{{Mate: in, Moves: moves}}}
}

// fenAfter applies UCI moves to a FEN and returns the resulting FEN, so
// tests can script the oracle for positions deep in a line.
func fenAfter(t *testing.T, fen string, moves ...string) string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad test FEN %q: %v", fen, err)
	}
	pos := chess.NewGame(opt).Position()
	for _, u := range moves {
		m, err := chess.UCINotation{}.Decode(pos, u)
		if err != nil {
			t.Fatalf("bad test move %q from %q: %v", u, pos.String(), err)
		}
		pos = pos.Update(m)
	}
	return pos.String()
}

// ============================================================
// Immediate outcomes
// ============================================================

func TestValidate_MateInOneAcceptedWithoutOracle(t *testing.T) {
	// Fool's mate: Qh4 is checkmate on the spot.
	fen := "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2"
	oracle := &fakeOracle{}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "d8h4")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.Verdict != VerdictAccepted {
		t.Fatalf("verdict = %s, want accepted", rep.Verdict)
	}
	if len(rep.Line) != 1 || rep.Line[0] != "d8h4" {
		t.Errorf("line = %v, want the mating move alone", rep.Line)
	}
	if oracle.callCount() != 0 {
		t.Errorf("immediate mate reached the oracle %d times", oracle.callCount())
	}
}

func TestValidate_MateInTwoAccepted(t *testing.T) {
	fen := "5rk1/5ppp/8/8/8/8/8/K2RR3 w - - 0 1"
	after := fenAfter(t, fen, "d1d8")
	afterDefense := fenAfter(t, fen, "d1d8", "f8d8")

	oracle := &fakeOracle{byFEN: map[string]*engine.Result{
		after:        quietLine("f8d8", -200),
		afterDefense: mateLine([]string{"e1e8", "d8e8", "a1b2"}, 2),
	}}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "d1d8")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.Verdict != VerdictAccepted {
		t.Fatalf("verdict = %s (%s), want accepted", rep.Verdict, rep.Reason)
	}
	if rep.Reason != "forced mate" {
		t.Errorf("reason = %q, want forced mate", rep.Reason)
	}
	if len(rep.Line) < 3 || rep.Line[0] != "d1d8" || rep.Line[1] != "f8d8" {
		t.Errorf("supporting line %v should replay the defense into the mate", rep.Line)
	}
}

// ============================================================
// Strict rejection rules
// ============================================================

func TestValidate_EqualTradeRejected(t *testing.T) {
	// Rxd8+ Kxd8 trades rook for rook, nothing gained.
	fen := "3rk3/8/8/8/8/8/8/3RK3 w - - 0 1"
	after := fenAfter(t, fen, "d1d8")

	oracle := &fakeOracle{byFEN: map[string]*engine.Result{
		after: quietLine("e8d8", 0),
	}}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "d1d8")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.Verdict != VerdictRejected {
		t.Fatalf("verdict = %s (%s), want rejected", rep.Verdict, rep.Reason)
	}
	if rep.MaterialDelta != 0 {
		t.Errorf("material delta = %d, want 0 for an equal trade", rep.MaterialDelta)
	}
	if len(rep.Line) != 2 || rep.Line[1] != "e8d8" {
		t.Errorf("line = %v, want the recapture shown as refutation", rep.Line)
	}
}

func TestValidate_TrapRejectedByCorrectDefense(t *testing.T) {
	// Nd5 attacks the queen, but the queen simply steps away; the knight
	// is guarded by the c4 pawn so taking it loses the queen.
	fen := "4k3/4q3/8/8/2P5/2N5/8/4K3 w - - 0 1"
	after := fenAfter(t, fen, "c3d5")

	oracle := &fakeOracle{byFEN: map[string]*engine.Result{
		after: quietLine("e7d8", 0),
	}}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "c3d5")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.Verdict != VerdictRejected {
		t.Fatalf("verdict = %s (%s), want rejected", rep.Verdict, rep.Reason)
	}
	if rep.Line[0] != "c3d5" || rep.Line[1] != "e7d8" {
		t.Errorf("line = %v, want the queen retreat as the refutation", rep.Line)
	}
	if rep.MaterialDelta != 0 {
		t.Errorf("material delta = %d, correct defense holds equal material", rep.MaterialDelta)
	}
}

func TestValidate_IllegalDefenseSuggestionDropped(t *testing.T) {
	// The oracle proposes a defense that is not legal in the position. It
	// must be discarded, leaving the check evasions to refute the trade.
	fen := "3rk3/8/8/8/8/8/8/3RK3 w - - 0 1"
	after := fenAfter(t, fen, "d1d8")

	oracle := &fakeOracle{byFEN: map[string]*engine.Result{
		after: quietLine("a7a5", 0),
	}}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "d1d8")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.Verdict != VerdictRejected {
		t.Fatalf("verdict = %s (%s), want rejected", rep.Verdict, rep.Reason)
	}
	if rep.MaterialDelta != 0 {
		t.Errorf("material delta = %d, want 0 after the recapture", rep.MaterialDelta)
	}
	for _, u := range rep.Line {
		if u == "a7a5" {
			t.Fatalf("line %v contains the illegal suggestion", rep.Line)
		}
	}
}

// ============================================================
// Acceptance on material
// ============================================================

func TestValidate_WinningCaptureAccepted(t *testing.T) {
	// Rxe5 wins an undefended knight with no comeback.
	fen := "7k/8/8/4n3/8/8/8/4R1K1 w - - 0 1"
	after := fenAfter(t, fen, "e1e5")

	oracle := &fakeOracle{byFEN: map[string]*engine.Result{
		after: quietLine("h8g8", -300),
	}}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "e1e5")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.Verdict != VerdictAccepted {
		t.Fatalf("verdict = %s (%s), want accepted", rep.Verdict, rep.Reason)
	}
	if rep.MaterialDelta <= 0 {
		t.Errorf("material delta = %d, want positive", rep.MaterialDelta)
	}
	if rep.Line[0] != "e1e5" {
		t.Errorf("line = %v must start with the candidate", rep.Line)
	}
}

func TestValidate_BackRankTradeMateAccepted(t *testing.T) {
	// Re8+ Rxe8 Rxe8 is mate: the recapture at the end of the exchange
	// chain delivers it, so the verdict rests on judging that final
	// position correctly.
	fen := "2r3k1/5ppp/8/8/8/8/4R3/4R1K1 w - - 0 1"
	after := fenAfter(t, fen, "e2e8")

	oracle := &fakeOracle{byFEN: map[string]*engine.Result{
		after: quietLine("c8e8", -900),
	}}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "e2e8")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.Verdict != VerdictAccepted {
		t.Fatalf("verdict = %s (%s), want accepted", rep.Verdict, rep.Reason)
	}
	if rep.Reason != "forced mate" {
		t.Errorf("reason = %q, want forced mate", rep.Reason)
	}
	want := []string{"e2e8", "c8e8", "e1e8"}
	if len(rep.Line) != 3 || rep.Line[0] != want[0] || rep.Line[1] != want[1] || rep.Line[2] != want[2] {
		t.Errorf("line = %v, want %v", rep.Line, want)
	}
	if rep.MaterialDelta != 0 {
		t.Errorf("material delta = %d, want 0 for a mate outcome", rep.MaterialDelta)
	}
}

func TestValidate_UnstoppablePromotionAccepted(t *testing.T) {
	// b7 gains nothing on the material count, but the pawn queens next
	// move and the defender cannot reach it. The oracle's decisive score
	// settles the branch.
	fen := "8/8/1P6/8/8/7k/8/7K w - - 0 1"
	after := fenAfter(t, fen, "b6b7")
	afterDefense := fenAfter(t, fen, "b6b7", "h3g4")

	oracle := &fakeOracle{byFEN: map[string]*engine.Result{
		after:        quietLine("h3g4", -950),
		afterDefense: quietLine("b7b8q", 950),
	}}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "b6b7")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.Verdict != VerdictAccepted {
		t.Fatalf("verdict = %s (%s), want accepted", rep.Verdict, rep.Reason)
	}
	if rep.Reason != "unstoppable promotion" {
		t.Errorf("reason = %q, want unstoppable promotion", rep.Reason)
	}
	if rep.MaterialDelta != 0 {
		t.Errorf("material delta = %d, the pawn has not queened yet", rep.MaterialDelta)
	}
}

// ============================================================
// Ambiguity and input validation
// ============================================================

func TestValidate_AmbiguousWhenOracleDown(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		candidate string
	}{
		// No forcing replies exist statically, so nothing can be probed.
		{"quiet position", "7k/8/8/4n3/8/8/8/4R1K1 w - - 0 1", "e1e5"},
		// Replies exist (check evasions), but judging them needs the oracle.
		{"unjudgeable replies", "3rk3/8/8/8/8/8/8/3RK3 w - - 0 1", "d1d8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(&fakeOracle{failAll: true}, testTacticsConfig(), nil)

			rep, err := v.Validate(context.Background(), tt.fen, tt.candidate)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if rep.Verdict != VerdictAmbiguous {
				t.Errorf("verdict = %s (%s), want ambiguous", rep.Verdict, rep.Reason)
			}
		})
	}
}

func TestValidate_RejectsBadInput(t *testing.T) {
	v := NewValidator(&fakeOracle{}, testTacticsConfig(), nil)
	start := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	_, err := v.Validate(context.Background(), "garbage", "e2e4")
	var posErr *engine.InvalidPositionError
	if !errors.As(err, &posErr) {
		t.Errorf("err = %v, want InvalidPositionError", err)
	}

	_, err = v.Validate(context.Background(), start, "e2e5")
	var moveErr *IllegalMoveError
	if !errors.As(err, &moveErr) {
		t.Errorf("err = %v, want IllegalMoveError", err)
	}
	if moveErr != nil && moveErr.Move != "e2e5" {
		t.Errorf("error move = %q, want e2e5", moveErr.Move)
	}
}

func TestValidate_SupportingLineIsLegal(t *testing.T) {
	// Whatever the verdict, the returned line must replay legally from the
	// initiating position (mate PVs from the oracle excepted, so we use a
	// material outcome here).
	fen := "3rk3/8/8/8/8/8/8/3RK3 w - - 0 1"
	after := fenAfter(t, fen, "d1d8")
	oracle := &fakeOracle{byFEN: map[string]*engine.Result{
		after: quietLine("e8d8", 0),
	}}
	v := NewValidator(oracle, testTacticsConfig(), nil)

	rep, err := v.Validate(context.Background(), fen, "d1d8")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	opt, _ := chess.FEN(fen)
	pos := chess.NewGame(opt).Position()
	for i, u := range rep.Line {
		m, err := chess.UCINotation{}.Decode(pos, u)
		if err != nil {
			t.Fatalf("line move %d (%q) is not legal: %v", i, u, err)
		}
		pos = pos.Update(m)
	}
}
