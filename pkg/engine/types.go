package engine

import (
	"context"
	"time"
)

// MateScore is the centipawn magnitude assigned to a forced mate when a
// scalar evaluation is needed. Mate in fewer moves scores closer to the full
// magnitude so shorter mates compare as better.
const MateScore = 10000

// Line is one principal variation returned by the engine.
type Line struct {
	// ScoreCP is the evaluation in centipawns from the perspective of the
	// side to move at request time. Meaningless when Mate is non-zero.
	ScoreCP int `json:"score_cp"`

	// Mate is the number of moves until forced mate. Positive means the side
	// to move delivers mate, negative means it receives it. Zero means no
	// forced mate was found.
	Mate int `json:"mate,omitempty"`

	// Moves is the principal variation in UCI notation, best move first.
	Moves []string `json:"moves"`
}

// IsMate reports whether this line ends in a forced mate.
func (l Line) IsMate() bool {
	return l.Mate != 0
}

// Value collapses the line's evaluation to a single centipawn scalar,
// mapping forced mates onto +/-MateScore adjusted by distance so that a
// shorter mate is worth more than a longer one.
func (l Line) Value() int {
	if l.Mate > 0 {
		return MateScore - l.Mate
	}
	if l.Mate < 0 {
		return -MateScore - l.Mate
	}
	return l.ScoreCP
}

// Result is the oracle output for one analysis request.
type Result struct {
	// FEN is the analyzed position.
	FEN string `json:"fen"`

	// Depth is the depth actually searched, which may be lower than
	// requested if the request exceeded the configured engine cap.
	Depth int `json:"depth"`

	// BestMove is the engine's chosen move in UCI notation.
	BestMove string `json:"best_move"`

	// Lines holds the requested principal variations, best first.
	Lines []Line `json:"lines"`
}

// Best returns the top line, or nil if the engine returned none (no legal
// moves: checkmate or stalemate).
func (r *Result) Best() *Line {
	if len(r.Lines) == 0 {
		return nil
	}
	return &r.Lines[0]
}

// Metrics is a point-in-time snapshot of queue counters. Counters are
// cumulative for the queue's lifetime and only reset by explicit operator
// action.
type Metrics struct {
	TotalRequests    int64   `json:"total_requests"`
	FailedRequests   int64   `json:"failed_requests"`
	AvgWaitTimeMS    float64 `json:"avg_wait_time_ms"`
	MaxQueueDepth    int     `json:"max_queue_depth"`
	CurrentQueueSize int     `json:"current_queue_size"`
	Processing       bool    `json:"processing"`
	Degraded         bool    `json:"degraded"`
}

// request is a queued unit of work. It is owned exclusively by the queue
// from submission until completion; the submitter owns only the result
// channel.
type request struct {
	fen     string
	depth   int
	multiPV int

	ctx      context.Context
	enqueued time.Time
	resultCh chan outcome
}

type outcome struct {
	result *Result
	err    error
}

// Submitter is the queue capability consumed by the confidence engine and
// the tactic validator. All oracle access flows through it; neither consumer
// ever touches the engine process directly.
type Submitter interface {
	Submit(ctx context.Context, fen string, depth, multiPV int) (*Result, error)
}

// Observer receives queue lifecycle callbacks. The telemetry metrics
// collector implements it; a nil observer is valid and ignored.
type Observer interface {
	// RecordRequest is called once per completed request with its terminal
	// status ("success", "failed", "canceled") and time spent waiting plus
	// in service.
	RecordRequest(status string, wait time.Duration)

	// SetQueueDepth reports the current number of waiting requests.
	SetQueueDepth(n int)

	// SetDegraded reports transitions in and out of the degraded state.
	SetDegraded(degraded bool)

	// RecordRestart is called for every engine restart attempt outcome.
	RecordRestart(success bool)
}
