package tactics

import (
	"github.com/notnil/chess"

	"mercator-hq/gambit/pkg/features"
)

// resolveExchanges settles the capture sequence started on hotSq: each side
// in turn plays its locally best capture until no worthwhile capture
// remains. A recapture on the square that just changed hands is played even
// at even value; any other capture must win material outright, and either
// side may simply decline. The interpreter never searches, it only follows
// the greedy chain, which keeps it bounded and auditable.
//
// Returns the moves played, the final position, and whether quiescence was
// reached within maxPly.
func resolveExchanges(pos *chess.Position, hotSq chess.Square, maxPly int) ([]string, *chess.Position, bool) {
	enc := chess.UCINotation{}
	var played []string

	for ply := 0; ply < maxPly; ply++ {
		if pos.Status() != chess.NoMethod {
			return played, pos, true
		}
		m := bestCapture(pos, hotSq)
		if m == nil {
			return played, pos, true
		}
		played = append(played, enc.Encode(pos, m))
		hotSq = m.S2()
		// Reparsed so the next Status call sees check correctly.
		pos = reparse(pos.Update(m))
	}

	quiet := pos.Status() != chess.NoMethod || bestCapture(pos, hotSq) == nil
	return played, pos, quiet
}

// bestCapture picks the mover's most profitable capture: highest-value
// victim first, and among equal victims the lowest-value capturing piece.
// Captures on hotSq qualify at even value (a recapture), all others only
// when they win material against a static exchange estimate. Returns nil
// when declining is the best option.
func bestCapture(pos *chess.Position, hotSq chess.Square) *chess.Move {
	var best *chess.Move
	bestGain, bestAttacker := 0, 0

	for _, m := range pos.ValidMoves() {
		if !m.HasTag(chess.Capture) && !m.HasTag(chess.EnPassant) {
			continue
		}
		gain, attacker := captureGain(pos, m)

		threshold := 1
		if m.S2() == hotSq {
			threshold = 0
		}
		if gain < threshold {
			continue
		}
		if best == nil || gain > bestGain || (gain == bestGain && attacker < bestAttacker) {
			best, bestGain, bestAttacker = m, gain, attacker
		}
	}
	return best
}

// captureGain is a one-exchange static estimate: the victim's value, minus
// the capturing piece's value if the destination is guarded. It also
// returns the capturing piece's value for lowest-attacker tie-breaks.
func captureGain(pos *chess.Position, m *chess.Move) (gain, attacker int) {
	pieces := pos.Board().SquareMap()

	attacker = features.PieceValue(pieces[m.S1()].Type())

	victim := features.PieceValue(chess.Pawn) // en passant leaves S2 empty
	if p, ok := pieces[m.S2()]; ok {
		victim = features.PieceValue(p.Type())
	}

	gain = victim
	if guards := features.Attackers(pos, m.S2(), pieces[m.S1()].Color().Other()); len(guards) > 0 {
		gain -= attacker
	}
	return gain, attacker
}
