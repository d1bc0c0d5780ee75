package features

import "github.com/notnil/chess"

// detectKingSafety tags kings with thin pawn cover while heavy pieces remain
// on the board, and kings standing on or next to files with no friendly
// pawns.
func detectKingSafety(s *scan, rep *Report) {
	for _, c := range []chess.Color{chess.White, chess.Black} {
		kingSq := s.kingSquare(c)
		if kingSq == chess.NoSquare {
			continue
		}
		enemy := c.Other()

		if s.enemyQueenOnBoard(enemy) && s.shieldPawns(kingSq, c) < 2 {
			rep.addTag(colorTag(c, TagKingExposed))
		}

		kf := int(kingSq.File())
		for df := -1; df <= 1; df++ {
			f := kf + df
			if f < 0 || f > 7 {
				continue
			}
			if s.ownPawnsOnFile(f, c) == 0 {
				rep.addTag(colorTag(c, TagKingOpenFile))
				break
			}
		}
	}
}

func (s *scan) enemyQueenOnBoard(enemy chess.Color) bool {
	found := false
	s.eachPiece(enemy, func(sq chess.Square, p chess.Piece) {
		if p.Type() == chess.Queen {
			found = true
		}
	})
	return found
}

// shieldPawns counts own pawns on the three files around the king, one or
// two ranks in front of it.
func (s *scan) shieldPawns(kingSq chess.Square, c chess.Color) int {
	file, rank := int(kingSq.File()), int(kingSq.Rank())
	dir := 1
	if c == chess.Black {
		dir = -1
	}

	count := 0
	for df := -1; df <= 1; df++ {
		for dr := 1; dr <= 2; dr++ {
			f, r := file+df, rank+dir*dr
			if !onBoard(f, r) {
				continue
			}
			p, ok := s.pieces[square(f, r)]
			if ok && p.Type() == chess.Pawn && p.Color() == c {
				count++
			}
		}
	}
	return count
}

func (s *scan) ownPawnsOnFile(file int, c chess.Color) int {
	count := 0
	for r := 0; r < 8; r++ {
		p, ok := s.pieces[square(file, r)]
		if ok && p.Type() == chess.Pawn && p.Color() == c {
			count++
		}
	}
	return count
}
