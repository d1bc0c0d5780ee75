package features

import "github.com/notnil/chess"

// detectLineControl finds rooks on open and semi-open files, rooks on the
// seventh rank, bishops controlling a full long diagonal, and the bishop
// pair.
func detectLineControl(s *scan, rep *Report) {
	for _, c := range []chess.Color{chess.White, chess.Black} {
		bishops := 0

		s.eachPiece(c, func(sq chess.Square, p chess.Piece) {
			switch p.Type() {
			case chess.Rook:
				f := int(sq.File())
				own, enemy := s.pawnsOnFile(f)
				ownForColor, enemyForColor := own, enemy
				if c == chess.Black {
					ownForColor, enemyForColor = enemy, own
				}
				if ownForColor == 0 && enemyForColor == 0 {
					rep.addRole(sq, RoleRookOpenFile)
				} else if ownForColor == 0 {
					rep.addRole(sq, RoleRookSemiOpenFile)
				}
				if onSeventhRank(sq, c) {
					rep.addTag(colorTag(c, TagRookOnSeventh))
				}

			case chess.Bishop:
				bishops++
				if s.controlsLongDiagonal(sq) {
					rep.addRole(sq, RoleLongDiagonal)
				}
			}
		})

		if bishops >= 2 {
			rep.addTag(colorTag(c, TagBishopPair))
		}
	}
}

// pawnsOnFile counts white and black pawns on a file.
func (s *scan) pawnsOnFile(file int) (white, black int) {
	for r := 0; r < 8; r++ {
		p, ok := s.pieces[square(file, r)]
		if !ok || p.Type() != chess.Pawn {
			continue
		}
		if p.Color() == chess.White {
			white++
		} else {
			black++
		}
	}
	return white, black
}

func onSeventhRank(sq chess.Square, c chess.Color) bool {
	if c == chess.White {
		return int(sq.Rank()) == 6
	}
	return int(sq.Rank()) == 1
}

// controlsLongDiagonal reports whether the bishop sits on one of the two
// long diagonals with an unobstructed view of at least five squares.
func (s *scan) controlsLongDiagonal(sq chess.Square) bool {
	f, r := int(sq.File()), int(sq.Rank())
	if f != r && f+r != 7 {
		return false
	}
	seen := 0
	for _, a := range attacksFrom(s.pieces, sq) {
		af, ar := int(a.File()), int(a.Rank())
		if af == ar || af+ar == 7 {
			seen++
		}
	}
	return seen >= 5
}
