package features

import "github.com/notnil/chess"

// boardMap is a scratch piece placement. Detectors that simulate hypothetical
// captures copy it and edit the copy; the real Position is never mutated.
type boardMap map[chess.Square]chess.Piece

func square(file, rank int) chess.Square {
	return chess.Square(rank*8 + file)
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
var rookDirs = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// attacksFrom returns the squares attacked by the piece on sq, given the
// occupancy in pieces. Sliding attacks stop at the first occupied square,
// which is itself included (attacking an occupied square is what captures
// and defenses are made of).
func attacksFrom(pieces boardMap, sq chess.Square) []chess.Square {
	p, ok := pieces[sq]
	if !ok || p == chess.NoPiece {
		return nil
	}

	file, rank := int(sq.File()), int(sq.Rank())
	var out []chess.Square

	switch p.Type() {
	case chess.Pawn:
		dir := 1
		if p.Color() == chess.Black {
			dir = -1
		}
		for _, df := range []int{-1, 1} {
			if onBoard(file+df, rank+dir) {
				out = append(out, square(file+df, rank+dir))
			}
		}

	case chess.Knight:
		for _, o := range knightOffsets {
			if onBoard(file+o[0], rank+o[1]) {
				out = append(out, square(file+o[0], rank+o[1]))
			}
		}

	case chess.King:
		for _, o := range kingOffsets {
			if onBoard(file+o[0], rank+o[1]) {
				out = append(out, square(file+o[0], rank+o[1]))
			}
		}

	case chess.Bishop:
		out = slideAttacks(pieces, file, rank, bishopDirs[:])

	case chess.Rook:
		out = slideAttacks(pieces, file, rank, rookDirs[:])

	case chess.Queen:
		out = slideAttacks(pieces, file, rank, bishopDirs[:])
		out = append(out, slideAttacks(pieces, file, rank, rookDirs[:])...)
	}

	return out
}

func slideAttacks(pieces boardMap, file, rank int, dirs [][2]int) []chess.Square {
	var out []chess.Square
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			sq := square(f, r)
			out = append(out, sq)
			if _, occupied := pieces[sq]; occupied {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return out
}

// attackersOf returns the squares of all pieces of the given color that
// attack target. A piece on the target square itself is not its own
// attacker.
func attackersOf(pieces boardMap, target chess.Square, by chess.Color) []chess.Square {
	var out []chess.Square
	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		if sq == target {
			continue
		}
		p, ok := pieces[sq]
		if !ok || p.Color() != by {
			continue
		}
		for _, a := range attacksFrom(pieces, sq) {
			if a == target {
				out = append(out, sq)
				break
			}
		}
	}
	return out
}

// defendersOf returns the same-color pieces guarding the piece on target,
// i.e. the pieces that could recapture there.
func defendersOf(pieces boardMap, target chess.Square) []chess.Square {
	p, ok := pieces[target]
	if !ok {
		return nil
	}
	return attackersOf(pieces, target, p.Color())
}

// rayThrough walks from sq in direction d and returns the squares in order
// until the edge of the board, ignoring occupancy. Callers that care about
// blockers inspect the pieces themselves.
func rayThrough(sq chess.Square, d [2]int) []chess.Square {
	var out []chess.Square
	f, r := int(sq.File())+d[0], int(sq.Rank())+d[1]
	for onBoard(f, r) {
		out = append(out, square(f, r))
		f += d[0]
		r += d[1]
	}
	return out
}

// slidingDirs returns the ray directions a piece type moves along, or nil
// for non-sliders.
func slidingDirs(t chess.PieceType) [][2]int {
	switch t {
	case chess.Bishop:
		return bishopDirs[:]
	case chess.Rook:
		return rookDirs[:]
	case chess.Queen:
		dirs := make([][2]int, 0, 8)
		dirs = append(dirs, bishopDirs[:]...)
		return append(dirs, rookDirs[:]...)
	}
	return nil
}
