package features

import "github.com/notnil/chess"

// detectOverworked finds pieces whose defensive duties exceed what they can
// actually deliver: the piece is the sole defender of two or more friendly
// pieces, and capturing it would leave at least two of them undefended at
// once with no single relocation able to cover them all.
//
// The capture is simulated on a scratch copy of the piece placement; the
// real position is never touched.
func detectOverworked(s *scan, rep *Report) {
	for _, c := range []chess.Color{chess.White, chess.Black} {
		s.eachPiece(c, func(sq chess.Square, p chess.Piece) {
			if p.Type() == chess.King {
				return
			}

			burden := s.soleDefenseBurden(sq, c)
			if len(burden) < 2 {
				return
			}

			// Simulate the capture: remove the defender and recount.
			scratch := make(boardMap, len(s.pieces))
			for k, v := range s.pieces {
				scratch[k] = v
			}
			delete(scratch, sq)

			exposed := 0
			for _, target := range burden {
				if len(defendersOf(scratch, target)) == 0 {
					exposed++
				}
			}
			if exposed < 2 {
				return
			}

			if canCoverAllFromOneSquare(s.pieces, sq, burden) {
				return
			}
			rep.addRole(sq, RoleOverworked)
			rep.addTag(colorTag(c, TagTacticalMotifs))
		})
	}
}

// canCoverAllFromOneSquare reports whether the piece on sq has a single
// destination from which it would still defend every square in burden. The
// relocation is simulated on a scratch copy per candidate destination.
func canCoverAllFromOneSquare(pieces boardMap, sq chess.Square, burden []chess.Square) bool {
	p := pieces[sq]

	for _, dest := range attacksFrom(pieces, sq) {
		if occupant, ok := pieces[dest]; ok && occupant.Color() == p.Color() {
			continue // cannot land on a friendly piece
		}

		scratch := make(boardMap, len(pieces))
		for k, v := range pieces {
			scratch[k] = v
		}
		delete(scratch, sq)
		scratch[dest] = p

		covers := 0
		for _, target := range burden {
			if target == dest {
				continue // relocating onto a defended piece's square vacates it
			}
			for _, a := range attacksFrom(scratch, dest) {
				if a == target {
					covers++
					break
				}
			}
		}
		if covers == len(burden) {
			return true
		}
	}
	return false
}
