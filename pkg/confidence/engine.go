package confidence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/notnil/chess"

	"mercator-hq/gambit/pkg/config"
	"mercator-hq/gambit/pkg/engine"
)

// Engine grows confidence trees. It owns no oracle process; every
// evaluation goes through the request queue it was built with, so any
// number of Analyze calls may run concurrently.
type Engine struct {
	oracle engine.Submitter
	cfg    config.AnalysisConfig
	logger *slog.Logger

	mu      sync.RWMutex
	weights Weights
}

// New builds a confidence engine on top of an oracle submitter.
func New(oracle engine.Submitter, cfg config.AnalysisConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		oracle:  oracle,
		cfg:     cfg,
		logger:  logger.With("component", "confidence"),
		weights: WeightsFromConfig(cfg.Weights),
	}
}

// SetWeights swaps the scoring coefficients. Trees already built keep their
// frozen scores; only subsequent Analyze calls see the new weights.
func (e *Engine) SetWeights(w Weights) {
	e.mu.Lock()
	e.weights = w
	e.mu.Unlock()
}

func (e *Engine) currentWeights() Weights {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weights
}

// workItem describes a node that has not been evaluated yet. Tree growth is
// an explicit work list over these, never recursion, so the exploration
// depth is a data value bounded by MaxPly and MaxNodes.
type workItem struct {
	parent int // arena index of the parent, -1 for the root
	fen    string
	move   string // UCI move that produced fen from the parent
	ply    int
	spine  bool
}

// evaluation carries one node's oracle output: the deep result (whose extra
// lines seed branching) and the folded confidence score.
type evaluation struct {
	deep  *engine.Result
	score int
}

// Analyze evaluates a position and grows an exploration tree around it.
//
// Each node compares a deep search against a shallow one and freezes the
// agreement into a 0-100 score. The tree follows the deep principal
// variation ply by ply; where a node scores below the baseline, alternative
// replies from the same deep search are opened as branches. Nodes at or
// above the baseline never branch. Growth stops at MaxPly from the root, at
// MaxBranches siblings per suspect node, and at MaxNodes overall.
//
// An oracle failure truncates the affected subtree: the node is kept,
// marked unresolved, and the rest of the tree survives. Only a queue that
// cannot start its engine at all fails the whole call.
func (e *Engine) Analyze(ctx context.Context, fen string, baseline int) (*Tree, error) {
	if baseline < 0 || baseline > 100 {
		return nil, fmt.Errorf("baseline %d outside [0, 100]", baseline)
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, &engine.InvalidPositionError{FEN: fen, Cause: err}
	}
	root := chess.NewGame(opt).Position()

	w := e.currentWeights()
	tree := &Tree{Baseline: baseline}
	work := []workItem{{parent: -1, fen: root.String(), spine: true}}

	for len(work) > 0 && len(tree.Nodes) < e.cfg.MaxNodes {
		it := work[0]
		work = work[1:]

		pos, ok := parseFEN(it.fen)
		if !ok {
			// Child FENs are produced by legal-move application, so this
			// is unreachable in practice; drop the item rather than panic.
			continue
		}

		idx := len(tree.Nodes)
		node := newNode(it.fen, it.parent, it.ply, it.move, it.spine, pos)

		var ev *evaluation
		switch pos.Status() {
		case chess.Checkmate:
			node.Terminal = "checkmate"
			node.Score = 100 // the game is over; there is nothing left to doubt
		case chess.Stalemate:
			node.Terminal = "stalemate"
			node.Score = 100
		default:
			ev, err = e.evaluate(ctx, pos, it.fen, w)
			if err != nil {
				var startErr *engine.StartError
				if errors.As(err, &startErr) {
					if idx == 0 {
						return nil, err
					}
					// The queue cannot reach its engine at all; keep what
					// we have and stop growing.
					node.Unresolved = true
					e.appendNode(tree, node, it.parent, idx)
					e.logger.Warn("analysis truncated, engine unavailable", "fen", it.fen, "error", err)
					return tree, nil
				}
				node.Unresolved = true
				e.logger.Warn("node unresolved", "fen", it.fen, "ply", it.ply, "error", err)
			} else {
				node.Score = ev.score
			}
		}

		e.appendNode(tree, node, it.parent, idx)

		if node.Terminal != "" || node.Unresolved || node.Ply >= e.cfg.MaxPly {
			continue
		}

		best := ev.deep.Best()
		if best == nil || len(best.Moves) == 0 {
			continue
		}

		// Spine growth continues past trustworthy nodes; only branching
		// stops there.
		if _, childFEN, ok := applyUCI(pos, best.Moves[0]); ok {
			work = append(work, workItem{
				parent: idx,
				fen:    childFEN,
				move:   best.Moves[0],
				ply:    node.Ply + 1,
				spine:  true,
			})
		}

		if node.Score >= baseline {
			continue
		}

		branches := 0
		for _, line := range ev.deep.Lines[1:] {
			if branches >= e.cfg.MaxBranches {
				break
			}
			if len(line.Moves) == 0 || line.Moves[0] == best.Moves[0] {
				continue
			}
			_, childFEN, ok := applyUCI(pos, line.Moves[0])
			if !ok {
				continue
			}
			work = append(work, workItem{
				parent: idx,
				fen:    childFEN,
				move:   line.Moves[0],
				ply:    node.Ply + 1,
				spine:  false,
			})
			branches++
		}
	}

	return tree, nil
}

func (e *Engine) appendNode(tree *Tree, node Node, parent, idx int) {
	tree.Nodes = append(tree.Nodes, node)
	if parent >= 0 {
		tree.Nodes[parent].Kids = append(tree.Nodes[parent].Kids, idx)
	}
}

// evaluate runs the deep and shallow searches for one position and folds
// the disagreement into a score. The deep search carries enough extra lines
// to seed branching, so a node costs at most three oracle round trips.
func (e *Engine) evaluate(ctx context.Context, pos *chess.Position, fen string, w Weights) (*evaluation, error) {
	deep, err := e.oracle.Submit(ctx, fen, e.cfg.DeepDepth, e.cfg.MaxBranches+1)
	if err != nil {
		return nil, err
	}
	shallow, err := e.oracle.Submit(ctx, fen, e.cfg.ShallowDepth, 1)
	if err != nil {
		return nil, err
	}

	db, sb := deep.Best(), shallow.Best()
	if db == nil || len(db.Moves) == 0 || sb == nil || len(sb.Moves) == 0 {
		return nil, fmt.Errorf("oracle returned no line for %q", fen)
	}

	d := deltas{
		evalGap:     absGap(db.Value(), sb.Value()),
		moveChanged: db.Moves[0] != sb.Moves[0],
	}

	// Replay the shallow search's plan one ply and let the deep search
	// judge the resulting position. The reply eval is from the opponent's
	// perspective, so it is negated before comparing.
	if child, childFEN, ok := applyUCI(pos, sb.Moves[0]); ok && child.Status() == chess.NoMethod {
		replay, err := e.oracle.Submit(ctx, childFEN, e.cfg.DeepDepth, 1)
		if err != nil {
			return nil, err
		}
		if rb := replay.Best(); rb != nil {
			d.replayGap = absGap(sb.Value(), -rb.Value())
		}
	}

	return &evaluation{deep: deep, score: w.score(d)}, nil
}

func parseFEN(fen string) (*chess.Position, bool) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, false
	}
	return chess.NewGame(opt).Position(), true
}

// applyUCI plays a UCI move on a position, returning the resulting position
// and its FEN. The original position is never mutated.
func applyUCI(pos *chess.Position, uci string) (*chess.Position, string, bool) {
	move, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return nil, "", false
	}
	child := pos.Update(move)
	return child, child.String(), true
}
