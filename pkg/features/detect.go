package features

import "github.com/notnil/chess"

// scan is the shared read-only context handed to every detector: the
// position plus its piece placement. Detectors derive whatever geometry they
// need from it and never read each other's findings, so registry order
// cannot change the result.
type scan struct {
	pos    *chess.Position
	pieces boardMap
}

// detector inspects a position and appends findings to the report.
type detector func(*scan, *Report)

// registry is the fixed set of detectors. Order is irrelevant to output
// (Report normalization sorts) but kept roughly by family for readability.
var registry = []detector{
	detectPawnStructure,
	detectKingSafety,
	detectLineControl,
	detectActivity,
	detectPins,
	detectForks,
	detectSkewers,
	detectOverworked,
}

// Detect extracts structural facts from a position. It is a pure function:
// the same position always yields the identical report, and the position is
// never mutated (hypothetical captures run on scratch copies).
func Detect(pos *chess.Position) Report {
	s := &scan{
		pos:    pos,
		pieces: boardMap(pos.Board().SquareMap()),
	}

	var rep Report
	for _, d := range registry {
		d(s, &rep)
	}
	rep.normalize()
	return rep
}

// eachPiece visits pieces of one color in square order, which keeps every
// detector's traversal deterministic.
func (s *scan) eachPiece(c chess.Color, fn func(sq chess.Square, p chess.Piece)) {
	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		if p, ok := s.pieces[sq]; ok && p.Color() == c {
			fn(sq, p)
		}
	}
}

func (s *scan) kingSquare(c chess.Color) chess.Square {
	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		if p, ok := s.pieces[sq]; ok && p.Color() == c && p.Type() == chess.King {
			return sq
		}
	}
	return chess.NoSquare
}
