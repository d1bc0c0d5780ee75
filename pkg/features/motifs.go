package features

import "github.com/notnil/chess"

// detectPins finds absolute pins: a piece that cannot legally leave a ray
// because a sliding attacker would hit its king. The pinned piece and the
// pinning slider both get roles, and the position gets a tactical-motifs
// tag for the pinned side.
func detectPins(s *scan, rep *Report) {
	for _, c := range []chess.Color{chess.White, chess.Black} {
		kingSq := s.kingSquare(c)
		if kingSq == chess.NoSquare {
			continue
		}

		for _, d := range slidingDirs(chess.Queen) {
			var blocker chess.Square = chess.NoSquare
			for _, sq := range rayThrough(kingSq, d) {
				p, ok := s.pieces[sq]
				if !ok {
					continue
				}
				if p.Color() == c {
					if blocker != chess.NoSquare {
						break // two own pieces shield the king on this ray
					}
					blocker = sq
					continue
				}
				// Enemy piece: a pin needs exactly one own blocker and a
				// slider moving along this ray.
				if blocker != chess.NoSquare && slidesAlong(p.Type(), d) {
					rep.addRole(blocker, RolePinned)
					rep.addRole(sq, RolePinning)
					rep.addTag(colorTag(c, TagTacticalMotifs))
				}
				break
			}
		}
	}
}

// detectForks finds pieces attacking two or more enemy targets that are
// each either undefended or worth more than the forking piece.
func detectForks(s *scan, rep *Report) {
	for _, c := range []chess.Color{chess.White, chess.Black} {
		enemy := c.Other()

		s.eachPiece(c, func(sq chess.Square, p chess.Piece) {
			targets := 0
			for _, a := range attacksFrom(s.pieces, sq) {
				tp, ok := s.pieces[a]
				if !ok || tp.Color() != enemy {
					continue
				}
				undefended := tp.Type() != chess.King && len(defendersOf(s.pieces, a)) == 0
				if undefended || pieceValue(tp.Type()) > pieceValue(p.Type()) {
					targets++
				}
			}
			if targets >= 2 {
				rep.addRole(sq, RoleForking)
				rep.addTag(colorTag(enemy, TagTacticalMotifs))
			}
		})
	}
}

// detectSkewers finds sliders attacking a high-value enemy piece with a
// cheaper enemy piece behind it on the same ray.
func detectSkewers(s *scan, rep *Report) {
	for _, c := range []chess.Color{chess.White, chess.Black} {
		enemy := c.Other()

		s.eachPiece(c, func(sq chess.Square, p chess.Piece) {
			dirs := slidingDirs(p.Type())
			if dirs == nil {
				return
			}
			for _, d := range dirs {
				var front chess.Square = chess.NoSquare
				for _, ray := range rayThrough(sq, d) {
					rp, ok := s.pieces[ray]
					if !ok {
						continue
					}
					if rp.Color() != enemy {
						break
					}
					if front == chess.NoSquare {
						front = ray
						// Only worth calling a skewer if the front piece
						// outranks the attacker.
						if pieceValue(rp.Type()) <= pieceValue(p.Type()) {
							break
						}
						continue
					}
					// Second enemy piece behind a more valuable front one.
					if pieceValue(rp.Type()) < pieceValue(s.pieces[front].Type()) {
						rep.addRole(sq, RoleSkewering)
						rep.addTag(colorTag(enemy, TagTacticalMotifs))
					}
					break
				}
			}
		})
	}
}

func slidesAlong(t chess.PieceType, d [2]int) bool {
	diagonal := d[0] != 0 && d[1] != 0
	switch t {
	case chess.Queen:
		return true
	case chess.Bishop:
		return diagonal
	case chess.Rook:
		return !diagonal
	}
	return false
}
