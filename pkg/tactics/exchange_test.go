package tactics

import (
	"testing"

	"github.com/notnil/chess"
)

func positionFromFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad test FEN %q: %v", fen, err)
	}
	return chess.NewGame(opt).Position()
}

func TestResolveExchanges_SimpleRecapture(t *testing.T) {
	// Black's c6 pawn takes the unguarded queen on d5, then nothing can
	// take back.
	pos := positionFromFEN(t, "4k3/8/2p5/3Q4/8/8/8/4K3 b - - 0 1")

	moves, final, quiescent := resolveExchanges(pos, chess.D5, 16)
	if !quiescent {
		t.Fatal("exchange should settle")
	}
	if len(moves) != 1 || moves[0] != "c6d5" {
		t.Fatalf("moves = %v, want the single recapture c6d5", moves)
	}
	if final.Turn() != chess.White {
		t.Error("after one capture it is white to move")
	}
}

func TestResolveExchanges_DeclinesLosingCapture(t *testing.T) {
	// The d7 knight could take the e5 pawn, but it is guarded by the d4
	// pawn; knight for pawn loses, so black declines and the position is
	// already quiescent.
	pos := positionFromFEN(t, "4k3/3n4/8/4P3/3P4/8/8/4K3 b - - 0 1")

	moves, _, quiescent := resolveExchanges(pos, chess.A1, 16)
	if !quiescent {
		t.Fatal("position with only losing captures is quiescent")
	}
	if len(moves) != 0 {
		t.Errorf("moves = %v, want none", moves)
	}
}

func TestResolveExchanges_RecaptureDeliversMate(t *testing.T) {
	// Rxe8 is both the recapture and a back-rank mate; the chain must stop
	// there and report the mate, not a stalemate.
	pos := positionFromFEN(t, "4r1k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")

	moves, final, quiescent := resolveExchanges(pos, chess.E8, 16)
	if !quiescent {
		t.Fatal("mate ends the chain")
	}
	if len(moves) != 1 || moves[0] != "e1e8" {
		t.Fatalf("moves = %v, want the single recapture e1e8", moves)
	}
	if final.Status() != chess.Checkmate {
		t.Errorf("final status = %v, want checkmate", final.Status())
	}
}

func TestResolveExchanges_PlyBudget(t *testing.T) {
	pos := positionFromFEN(t, "4k3/8/2p5/3Q4/8/8/8/4K3 b - - 0 1")

	moves, _, quiescent := resolveExchanges(pos, chess.D5, 0)
	if len(moves) != 0 {
		t.Errorf("moves = %v, want none with a zero budget", moves)
	}
	if quiescent {
		t.Error("a pending favorable capture means the chain did not settle")
	}
}

func TestBestCapture_PrefersCheapestAttacker(t *testing.T) {
	// Both the c4 pawn and the d1 rook can take the knight on d5; the pawn
	// is the right capturing piece.
	pos := positionFromFEN(t, "4k3/8/8/3n4/2P5/8/8/3RK3 w - - 0 1")

	enc := chess.UCINotation{}
	m := bestCapture(pos, chess.A1)
	if m == nil {
		t.Fatal("a free knight must be taken")
	}
	if got := enc.Encode(pos, m); got != "c4d5" {
		t.Errorf("capture = %s, want c4d5 (lowest-value attacker)", got)
	}
}

func TestBestCapture_EvenRecaptureOnlyOnHotSquare(t *testing.T) {
	// Rxd1 trades rook for rook since the e1 king guards d1. The trade
	// qualifies as a recapture when d1 is the hot square, and is declined
	// otherwise.
	enc := chess.UCINotation{}
	guarded := positionFromFEN(t, "3rk3/8/8/8/8/8/8/3RK3 b - - 0 1")
	if m := bestCapture(guarded, chess.A8); m != nil {
		t.Errorf("even trade off the hot square should be declined, got %s", enc.Encode(guarded, m))
	}
	if m := bestCapture(guarded, chess.D1); m == nil {
		t.Error("even recapture on the hot square should be played")
	} else if got := enc.Encode(guarded, m); got != "d8d1" {
		t.Errorf("recapture = %s, want d8d1", got)
	}
}
