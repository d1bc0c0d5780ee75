package features

import (
	"reflect"
	"testing"

	"github.com/notnil/chess"
)

func position(t *testing.T, fen string) *chess.Position {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad test FEN %q: %v", fen, err)
	}
	return chess.NewGame(opt).Position()
}

func TestDetect_Deterministic(t *testing.T) {
	// A busy middlegame position exercises most detector families at once.
	pos := position(t, "r1bq1rk1/pp2ppbp/2np1np1/8/2BNP3/2N1BP2/PPPQ2PP/R3K2R w KQ - 0 9")

	first := Detect(pos)
	second := Detect(pos)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Detect is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDetect_PawnStructure(t *testing.T) {
	// White pawns doubled and isolated on the c-file; both are also passed.
	pos := position(t, "8/8/8/8/2P5/2P5/8/K6k w - - 0 1")
	rep := Detect(pos)

	if !rep.HasTag(colorTag(chess.White, TagDoubledPawns)) {
		t.Error("expected white doubled-pawns tag")
	}
	if !rep.HasTag(colorTag(chess.White, TagIsolatedPawns)) {
		t.Error("expected white isolated-pawns tag")
	}
	if !rep.HasRole(chess.C4, RolePassedPawn) {
		t.Error("expected passed-pawn role on c4")
	}
	if !rep.HasRole(chess.C4, RoleIsolatedPawn) {
		t.Error("expected isolated-pawn role on c4")
	}
	if rep.HasTag(colorTag(chess.Black, TagDoubledPawns)) {
		t.Error("black has no pawns to double")
	}
}

func TestDetect_RookOpenFile(t *testing.T) {
	pos := position(t, "4k3/8/8/8/8/8/8/3RK3 w - - 0 1")
	rep := Detect(pos)

	if !rep.HasRole(chess.D1, RoleRookOpenFile) {
		t.Errorf("expected rook-open-file on d1, got %+v", rep.Roles[chess.D1])
	}
}

func TestDetect_RookSemiOpenFile(t *testing.T) {
	// Black pawn on d5 keeps the file from being fully open for white.
	pos := position(t, "4k3/8/8/3p4/8/8/8/3RK3 w - - 0 1")
	rep := Detect(pos)

	if !rep.HasRole(chess.D1, RoleRookSemiOpenFile) {
		t.Errorf("expected rook-semi-open-file on d1, got %+v", rep.Roles[chess.D1])
	}
	if rep.HasRole(chess.D1, RoleRookOpenFile) {
		t.Error("file with an enemy pawn is not open")
	}
}

func TestDetect_AbsolutePin(t *testing.T) {
	// Bb5 pins the c6 knight against the black king on e8.
	pos := position(t, "4k3/8/2n5/1B6/8/8/8/4K3 w - - 0 1")
	rep := Detect(pos)

	if !rep.HasRole(chess.C6, RolePinned) {
		t.Errorf("expected pinned role on c6, got %+v", rep.Roles[chess.C6])
	}
	if !rep.HasRole(chess.B5, RolePinning) {
		t.Errorf("expected pinning role on b5, got %+v", rep.Roles[chess.B5])
	}
	if !rep.HasTag(colorTag(chess.Black, TagTacticalMotifs)) {
		t.Error("expected tactical-motifs tag for the pinned side")
	}
}

func TestDetect_KnightFork(t *testing.T) {
	// Nc7 forks the black king on e8 and the rook on a8.
	pos := position(t, "r3k3/2N5/8/8/8/8/8/4K3 w - - 0 1")
	rep := Detect(pos)

	if !rep.HasRole(chess.C7, RoleForking) {
		t.Errorf("expected forking role on c7, got %+v", rep.Roles[chess.C7])
	}
}

func TestDetect_Skewer(t *testing.T) {
	// White rook on e1 hits the black queen on e5 with the rook behind it
	// on e8.
	pos := position(t, "4r2k/8/8/4q3/8/8/8/4R1K1 w - - 0 1")
	rep := Detect(pos)

	if !rep.HasRole(chess.E1, RoleSkewering) {
		t.Errorf("expected skewering role on e1, got %+v", rep.Roles[chess.E1])
	}
}

func TestDetect_HangingPiece(t *testing.T) {
	// The e2 knight is attacked by the e4 rook and defended by nothing.
	pos := position(t, "4k3/8/8/8/4r3/8/4N3/K7 w - - 0 1")
	rep := Detect(pos)

	if !rep.HasRole(chess.E2, RoleHanging) {
		t.Errorf("expected hanging role on e2, got %+v", rep.Roles[chess.E2])
	}
	if !rep.HasTag(colorTag(chess.White, TagHangingPiece)) {
		t.Error("expected white hanging-piece tag")
	}
}

func TestDetect_Overworked(t *testing.T) {
	// The d5 knight is the only defender of both the c7 and e3 pawns, and
	// no single knight move keeps covering both.
	pos := position(t, "7k/2p5/8/3n4/8/4p3/8/K7 b - - 0 1")
	rep := Detect(pos)

	if !rep.HasRole(chess.D5, RoleOverworked) {
		t.Errorf("expected overworked role on d5, got %+v", rep.Roles[chess.D5])
	}
}

func TestDetect_NotOverworkedWhenRelocationCovers(t *testing.T) {
	// The d5 queen is the only defender of the c5 and c6 pawns, but a step
	// to d6 keeps both covered, so it is burdened without being overworked.
	pos := position(t, "7k/8/2p5/2pq4/8/8/8/K7 b - - 0 1")
	rep := Detect(pos)

	if !rep.HasRole(chess.D5, RoleSoleDefender) {
		t.Errorf("expected sole-defender role on d5, got %+v", rep.Roles[chess.D5])
	}
	if rep.HasRole(chess.D5, RoleOverworked) {
		t.Error("a defender with a covering relocation must not be overworked")
	}
}

func TestDetect_KingExposure(t *testing.T) {
	pos := position(t, "4k3/8/8/8/8/8/8/q5K1 w - - 0 1")
	rep := Detect(pos)

	if !rep.HasTag(colorTag(chess.White, TagKingExposed)) {
		t.Error("expected white king-exposed tag with enemy queen on the board")
	}
	if rep.HasTag(colorTag(chess.Black, TagKingExposed)) {
		t.Error("black faces no queen, so no exposure tag")
	}
}

func TestDetect_DoesNotMutatePosition(t *testing.T) {
	pos := position(t, "7k/2p5/8/3n4/8/4p3/8/K7 b - - 0 1")
	before := pos.String()
	Detect(pos)
	if pos.String() != before {
		t.Errorf("Detect mutated the position: %q -> %q", before, pos.String())
	}
}
