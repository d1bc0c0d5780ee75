package tactics

import (
	"context"

	"github.com/notnil/chess"

	"mercator-hq/gambit/pkg/features"
)

// enumerateReplies curates the defensive replies worth simulating from the
// position after the candidate move: the oracle's preferred defense first
// (it is the reply most likely to refute), then every capture and check,
// then every quiet move that defuses a threat the moved piece created. When
// the defender is in check, every legal move is an evasion and qualifies.
//
// The list is capped at MaxReplies; the oracle's choice is never dropped.
func (v *Validator) enumerateReplies(ctx context.Context, after *chess.Position, attackerSq chess.Square) []*chess.Move {
	enc := chess.UCINotation{}
	seen := make(map[string]bool)
	var replies []*chess.Move

	add := func(m *chess.Move) {
		u := enc.Encode(after, m)
		if !seen[u] {
			seen[u] = true
			replies = append(replies, m)
		}
	}

	if res, err := v.oracle.Submit(ctx, after.String(), v.cfg.DefenseDepth, 1); err == nil {
		if best := res.Best(); best != nil && len(best.Moves) > 0 {
			if m, err := enc.Decode(after, best.Moves[0]); err == nil {
				// A suggestion that is not actually legal here is dropped
				// rather than trusted onto the board.
				if legal := findLegal(after, m); legal != nil {
					add(legal)
				}
			}
		}
	} else {
		v.logger.Warn("best-defense probe failed", "error", err)
	}

	evading := inCheck(after)
	threats := countThreats(after, attackerSq)

	for _, m := range after.ValidMoves() {
		if len(replies) >= v.cfg.MaxReplies {
			break
		}
		switch {
		case evading:
			add(m)
		case m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant) || m.HasTag(chess.Check):
			add(m)
		case threats > 0 && countThreats(after.Update(m), attackerSq) < threats:
			// Escapes and interpositions: the move takes at least one
			// piece out of the attacker's fire.
			add(m)
		}
	}
	return replies
}

// countThreats counts the defender's non-king pieces under fire from the
// piece standing on sq.
func countThreats(pos *chess.Position, sq chess.Square) int {
	pieces := pos.Board().SquareMap()
	p, ok := pieces[sq]
	if !ok {
		return 0
	}
	n := 0
	for _, a := range features.AttackedSquares(pos, sq) {
		target, occupied := pieces[a]
		if occupied && target.Color() != p.Color() && target.Type() != chess.King {
			n++
		}
	}
	return n
}

// inCheck reports whether the side to move is in check.
func inCheck(pos *chess.Position) bool {
	turn := pos.Turn()
	for sq, p := range pos.Board().SquareMap() {
		if p.Type() == chess.King && p.Color() == turn {
			return len(features.Attackers(pos, sq, turn.Other())) > 0
		}
	}
	return false
}
