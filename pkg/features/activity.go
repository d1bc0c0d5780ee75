package features

import "github.com/notnil/chess"

// detectActivity labels hanging pieces (attacked, undefended), pieces that
// attack undefended enemy material, and pieces carrying a sole-defender
// burden.
func detectActivity(s *scan, rep *Report) {
	for _, c := range []chess.Color{chess.White, chess.Black} {
		enemy := c.Other()

		s.eachPiece(c, func(sq chess.Square, p chess.Piece) {
			if p.Type() == chess.King {
				return
			}

			if len(attackersOf(s.pieces, sq, enemy)) > 0 && len(defendersOf(s.pieces, sq)) == 0 {
				rep.addRole(sq, RoleHanging)
				rep.addTag(colorTag(c, TagHangingPiece))
			}

			attacksUndefended := false
			for _, target := range attacksFrom(s.pieces, sq) {
				tp, ok := s.pieces[target]
				if !ok || tp.Color() != enemy || tp.Type() == chess.King {
					continue
				}
				if len(defendersOf(s.pieces, target)) == 0 {
					attacksUndefended = true
				}
			}
			if attacksUndefended {
				rep.addRole(sq, RoleAttacksUndefended)
			}

			if s.isSoleDefenderOfSomething(sq, c) {
				rep.addRole(sq, RoleSoleDefender)
			}
		})
	}
}

// isSoleDefenderOfSomething reports whether any friendly piece is defended
// by this piece and nothing else.
func (s *scan) isSoleDefenderOfSomething(sq chess.Square, c chess.Color) bool {
	return len(s.soleDefenseBurden(sq, c)) > 0
}

// soleDefenseBurden returns the friendly pieces for which the piece on sq is
// the only defender.
func (s *scan) soleDefenseBurden(sq chess.Square, c chess.Color) []chess.Square {
	var burden []chess.Square
	for _, target := range attacksFrom(s.pieces, sq) {
		tp, ok := s.pieces[target]
		if !ok || tp.Color() != c || tp.Type() == chess.King {
			continue
		}
		defenders := defendersOf(s.pieces, target)
		if len(defenders) == 1 && defenders[0] == sq {
			burden = append(burden, target)
		}
	}
	return burden
}
