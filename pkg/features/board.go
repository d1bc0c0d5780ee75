package features

import "github.com/notnil/chess"

// AttackedSquares returns the squares attacked by the piece on sq, sliding
// attacks stopping at the first occupied square. Empty if sq is empty.
func AttackedSquares(pos *chess.Position, sq chess.Square) []chess.Square {
	return attacksFrom(pos.Board().SquareMap(), sq)
}

// Attackers returns the squares of all pieces of the given color attacking
// target.
func Attackers(pos *chess.Position, target chess.Square, by chess.Color) []chess.Square {
	return attackersOf(pos.Board().SquareMap(), target, by)
}

// Defenders returns the same-color pieces guarding the piece on target.
func Defenders(pos *chess.Position, target chess.Square) []chess.Square {
	return defendersOf(pos.Board().SquareMap(), target)
}

// PieceValue returns the conventional centipawn value of a piece type.
func PieceValue(t chess.PieceType) int {
	return pieceValue(t)
}
