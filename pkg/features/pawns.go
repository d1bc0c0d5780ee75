package features

import "github.com/notnil/chess"

// detectPawnStructure finds doubled, isolated, and passed pawns.
func detectPawnStructure(s *scan, rep *Report) {
	for _, c := range []chess.Color{chess.White, chess.Black} {
		var fileCount [8]int
		var pawnSquares []chess.Square

		s.eachPiece(c, func(sq chess.Square, p chess.Piece) {
			if p.Type() == chess.Pawn {
				fileCount[int(sq.File())]++
				pawnSquares = append(pawnSquares, sq)
			}
		})

		doubled := false
		for _, n := range fileCount {
			if n > 1 {
				doubled = true
			}
		}
		if doubled {
			rep.addTag(colorTag(c, TagDoubledPawns))
		}

		isolated := false
		for _, sq := range pawnSquares {
			f := int(sq.File())
			neighbors := 0
			if f > 0 {
				neighbors += fileCount[f-1]
			}
			if f < 7 {
				neighbors += fileCount[f+1]
			}
			if neighbors == 0 {
				isolated = true
				rep.addRole(sq, RoleIsolatedPawn)
			}
			if s.isPassedPawn(sq, c) {
				rep.addRole(sq, RolePassedPawn)
			}
		}
		if isolated {
			rep.addTag(colorTag(c, TagIsolatedPawns))
		}
	}
}

// isPassedPawn reports whether no enemy pawn on the same or adjacent file
// stands between the pawn and promotion.
func (s *scan) isPassedPawn(sq chess.Square, c chess.Color) bool {
	file, rank := int(sq.File()), int(sq.Rank())
	dir := 1
	if c == chess.Black {
		dir = -1
	}

	for r := rank + dir; r >= 0 && r < 8; r += dir {
		for df := -1; df <= 1; df++ {
			f := file + df
			if !onBoard(f, r) {
				continue
			}
			p, ok := s.pieces[square(f, r)]
			if ok && p.Type() == chess.Pawn && p.Color() != c {
				return false
			}
		}
	}
	return true
}
