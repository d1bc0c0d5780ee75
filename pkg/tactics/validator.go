package tactics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/notnil/chess"

	"mercator-hq/gambit/pkg/config"
	"mercator-hq/gambit/pkg/engine"
	"mercator-hq/gambit/pkg/features"
)

// Verdict is the terminal outcome of validating one candidate. Ambiguous is
// distinct from rejected: it means the simulation ran out of depth or
// oracle access before a decision, not that the tactic was disproven.
type Verdict string

const (
	VerdictAccepted  Verdict = "accepted"
	VerdictRejected  Verdict = "rejected"
	VerdictAmbiguous Verdict = "ambiguous"
)

// Report is a verdict backed by the concrete line that produced it. For an
// accepted tactic the line shows the toughest defense still losing; for a
// rejected one it shows the defense that refutes it.
type Report struct {
	Verdict Verdict  `json:"verdict"`
	Line    []string `json:"supporting_line"`
	Reason  string   `json:"reason,omitempty"`

	// MaterialDelta is the attacker's net material along Line, in
	// centipawns, once the exchanges settle. Zero for mate outcomes.
	MaterialDelta int `json:"material_delta"`
}

// IllegalMoveError reports a candidate or reply move that is not legal in
// its position. Distinct from InvalidPositionError: the position was fine,
// the move was not.
type IllegalMoveError struct {
	Move  string
	FEN   string
	Cause error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("move %q is not legal in position %q", e.Move, e.FEN)
}

func (e *IllegalMoveError) Unwrap() error { return e.Cause }

// Validator proves or disproves tactical candidates by adversarial
// simulation: it plays the candidate, enumerates the opponent's plausible
// defenses, settles every capture sequence, and only accepts when all
// defenses still lose.
type Validator struct {
	oracle engine.Submitter
	cfg    config.TacticsConfig
	logger *slog.Logger
}

// NewValidator builds a validator on top of an oracle submitter.
func NewValidator(oracle engine.Submitter, cfg config.TacticsConfig, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		oracle: oracle,
		cfg:    cfg,
		logger: logger.With("component", "tactics"),
	}
}

// branch is the judged outcome of one defensive reply.
type branch struct {
	line     []string
	delta    int  // attacker's material swing once quiescent
	mate     bool // attacker forces mate
	mated    bool // attacker gets mated or the defense draws
	decisive bool // level material but the defense is lost anyway
	resolved bool
	reason   string
}

func (b *branch) winning() bool {
	return b.mate || b.decisive || (!b.mated && b.delta > 0)
}

// Validate plays candidate on the position and decides whether it survives
// best defense.
//
// A candidate is accepted only when every enumerated defensive reply still
// leaves the attacker with net material, a forced mate, or an unstoppable
// promotion once the capture sequences settle. A single defense holding the
// balance rejects it. If the simulation cannot decide within its depth
// bounds, or the oracle is unavailable for a branch that matters, the
// verdict is ambiguous.
func (v *Validator) Validate(ctx context.Context, fen, candidate string) (*Report, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, &engine.InvalidPositionError{FEN: fen, Cause: err}
	}
	pos := chess.NewGame(opt).Position()

	decoded, err := chess.UCINotation{}.Decode(pos, candidate)
	if err != nil {
		return nil, &IllegalMoveError{Move: candidate, FEN: fen, Cause: err}
	}
	// Decode only parses coordinates; legality is checked against the move
	// generator, whose instance also carries the capture/check tags.
	move := findLegal(pos, decoded)
	if move == nil {
		return nil, &IllegalMoveError{Move: candidate, FEN: fen}
	}

	attacker := pos.Turn()
	after := reparse(pos.Update(move))

	switch after.Status() {
	case chess.Checkmate:
		return &Report{Verdict: VerdictAccepted, Line: []string{candidate}, Reason: "checkmate"}, nil
	case chess.Stalemate:
		return &Report{Verdict: VerdictRejected, Line: []string{candidate}, Reason: "stalemate"}, nil
	}

	base := materialBalance(pos, attacker)
	replies := v.enumerateReplies(ctx, after, move.S2())
	if len(replies) == 0 {
		// No oracle and nothing forcing to probe statically.
		return &Report{Verdict: VerdictAmbiguous, Line: []string{candidate}, Reason: "no defense could be probed"}, nil
	}

	var refutation, toughest, pending *branch
	for _, reply := range replies {
		b := v.judgeReply(ctx, after, reply, attacker, base, candidate)

		switch {
		case b.mated || (b.resolved && !b.winning()):
			if refutation == nil || b.delta < refutation.delta || (b.mated && !refutation.mated) {
				refutation = b
			}
		case !b.resolved:
			if pending == nil {
				pending = b
			}
		default:
			if toughest == nil || b.delta < toughest.delta {
				toughest = b
			}
		}
	}

	if refutation != nil {
		reason := refutation.reason
		if reason == "" {
			reason = "defense holds the balance"
		}
		return &Report{Verdict: VerdictRejected, Line: refutation.line, Reason: reason, MaterialDelta: refutation.delta}, nil
	}
	if pending != nil {
		return &Report{Verdict: VerdictAmbiguous, Line: pending.line, Reason: pending.reason, MaterialDelta: pending.delta}, nil
	}

	// Every branch was judged winning, so the toughest one is the proof.
	reason := toughest.reason
	if reason == "" {
		reason = "wins material against every defense"
	}
	return &Report{Verdict: VerdictAccepted, Line: toughest.line, Reason: reason, MaterialDelta: toughest.delta}, nil
}

// judgeReply plays one defensive reply and follows it to a terminal
// judgement: counter-mate, forced mate found by the oracle, or a settled
// material balance from the capture-chain interpreter.
func (v *Validator) judgeReply(ctx context.Context, after *chess.Position, reply *chess.Move, attacker chess.Color, base int, candidate string) *branch {
	enc := chess.UCINotation{}
	replyUCI := enc.Encode(after, reply)
	child := reparse(after.Update(reply))
	line := []string{candidate, replyUCI}

	switch child.Status() {
	case chess.Checkmate:
		return &branch{line: line, mated: true, resolved: true, reason: "defense delivers mate"}
	case chess.Stalemate:
		return &branch{line: line, mated: true, resolved: true, reason: "defense forces stalemate"}
	}

	// The oracle sees past the exchanges: a forced mate either way settles
	// the branch outright.
	res, err := v.oracle.Submit(ctx, child.String(), v.cfg.DefenseDepth, 1)
	if err != nil {
		v.logger.Warn("defense probe failed", "move", replyUCI, "error", err)
		return &branch{line: line, resolved: false, reason: "engine unavailable"}
	}
	best := res.Best()
	if best != nil && best.IsMate() {
		if best.Mate > 0 {
			return &branch{line: append(line, best.Moves...), mate: true, resolved: true, reason: "forced mate"}
		}
		return &branch{line: line, mated: true, resolved: true, reason: "defense mates first"}
	}

	moves, final, quiescent := resolveExchanges(child, reply.S2(), v.cfg.MaxExchangePly)
	line = append(line, moves...)

	b := &branch{line: line, delta: materialBalance(final, attacker) - base, resolved: quiescent}
	switch final.Status() {
	case chess.Checkmate:
		if final.Turn() == attacker {
			b.mated, b.reason = true, "defense mates first"
		} else {
			b.mate, b.reason = true, "forced mate"
		}
	case chess.Stalemate:
		b.mated, b.reason = true, "defense forces stalemate"
	default:
		if !quiescent {
			b.reason = "exchange depth exhausted"
			break
		}
		// Level material can still be a lost defense: the common shape is
		// a passer one square from queening that nothing stops in time.
		// The oracle scores child from the attacker's side, since the
		// attacker is the one to move there.
		if b.delta <= 0 && best != nil && best.Value() >= v.cfg.DecisiveScore {
			b.decisive = true
			if pawnOnSeventh(final, attacker) {
				b.reason = "unstoppable promotion"
			} else {
				b.reason = "decisive advantage"
			}
		}
	}
	return b
}

// reparse round-trips a position through its FEN. Status misreports check
// on Update-produced positions, so every terminal judgement runs on a
// freshly parsed copy.
func reparse(pos *chess.Position) *chess.Position {
	opt, err := chess.FEN(pos.String())
	if err != nil {
		return pos
	}
	return chess.NewGame(opt).Position()
}

// findLegal resolves a decoded move against the position's legal moves and
// returns the generator's instance, tags intact. Nil when the move is not
// legal.
func findLegal(pos *chess.Position, m *chess.Move) *chess.Move {
	for _, vm := range pos.ValidMoves() {
		if vm.S1() == m.S1() && vm.S2() == m.S2() && vm.Promo() == m.Promo() {
			return vm
		}
	}
	return nil
}

// pawnOnSeventh reports whether c has a pawn one square from promotion.
func pawnOnSeventh(pos *chess.Position, c chess.Color) bool {
	target := chess.Rank7
	if c == chess.Black {
		target = chess.Rank2
	}
	for sq, p := range pos.Board().SquareMap() {
		if p.Type() == chess.Pawn && p.Color() == c && sq.Rank() == target {
			return true
		}
	}
	return false
}

// materialBalance sums material from c's perspective, kings excluded.
func materialBalance(pos *chess.Position, c chess.Color) int {
	bal := 0
	for _, p := range pos.Board().SquareMap() {
		if p.Type() == chess.King {
			continue
		}
		if p.Color() == c {
			bal += features.PieceValue(p.Type())
		} else {
			bal -= features.PieceValue(p.Type())
		}
	}
	return bal
}
