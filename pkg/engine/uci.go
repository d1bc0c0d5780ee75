package engine

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"mercator-hq/gambit/pkg/config"
)

// searchTimeout is the hard cap on a single depth-limited search. A search
// that produces no bestmove within this window is treated as protocol
// desynchronization and handled like a crash.
const searchTimeout = 5 * time.Minute

// evaluator is the queue worker's view of the oracle. The production
// implementation is uciProcess; tests substitute a scripted one.
type evaluator interface {
	Evaluate(fen string, depth, multiPV int) (*Result, error)
	Probe(timeout time.Duration) error
	Close() error
}

// evaluatorFactory creates a fresh evaluator. The queue invokes it at
// startup and after every crash.
type evaluatorFactory func() (evaluator, error)

// uciProcess wraps a single external UCI engine process. It is not safe for
// concurrent use; the queue worker is its only caller.
type uciProcess struct {
	cmd    *exec.Cmd
	stdin  *bufio.Writer
	lines  chan string // closed when the process's stdout reaches EOF
	waitCh chan error  // receives the cmd.Wait result exactly once
	logger *slog.Logger

	killOnce sync.Once
	done     chan struct{} // closed by kill; releases the output pump
}

// startUCIProcess launches the engine binary and completes the UCI
// handshake. The process is killed if the handshake does not finish within
// the startup timeout.
func startUCIProcess(cfg config.EngineConfig, logger *slog.Logger) (*uciProcess, error) {
	cmd := exec.Command(cfg.Path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open engine stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open engine stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start engine %q: %w", cfg.Path, err)
	}

	p := &uciProcess{
		cmd:    cmd,
		stdin:  bufio.NewWriter(stdin),
		lines:  make(chan string, 64),
		waitCh: make(chan error, 1),
		logger: logger,
		done:   make(chan struct{}),
	}

	go p.readOutput(stdout)
	go func() { p.waitCh <- cmd.Wait() }()

	if err := p.handshake(cfg); err != nil {
		p.kill()
		return nil, err
	}

	logger.Info("engine process started", "path", cfg.Path, "pid", cmd.Process.Pid)
	return p, nil
}

// readOutput pumps engine stdout into the line channel. The channel closes
// on EOF, which is how every reader learns the process died. A kill releases
// the pump even when the buffer is full and no reader remains.
func (p *uciProcess) readOutput(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		select {
		case p.lines <- scanner.Text():
		case <-p.done:
			return
		}
	}
	close(p.lines)
}

func (p *uciProcess) handshake(cfg config.EngineConfig) error {
	deadline := time.Now().Add(cfg.StartupTimeout)

	if err := p.send("uci"); err != nil {
		return &TerminatedError{Stage: "handshake", Cause: err}
	}
	if _, err := p.expect("uciok", time.Until(deadline)); err != nil {
		return err
	}

	p.send(fmt.Sprintf("setoption name Hash value %d", cfg.HashMB))
	p.send(fmt.Sprintf("setoption name Threads value %d", cfg.Threads))

	if err := p.send("isready"); err != nil {
		return &TerminatedError{Stage: "handshake", Cause: err}
	}
	if _, err := p.expect("readyok", time.Until(deadline)); err != nil {
		return err
	}
	return nil
}

func (p *uciProcess) send(cmd string) error {
	if _, err := p.stdin.WriteString(cmd + "\n"); err != nil {
		return err
	}
	return p.stdin.Flush()
}

// expect reads lines until one containing the marker arrives, the timeout
// elapses, or the process dies.
func (p *uciProcess) expect(marker string, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-p.lines:
			if !ok {
				return "", &TerminatedError{Stage: "handshake", Cause: p.exitError()}
			}
			if strings.Contains(line, marker) {
				return line, nil
			}
		case <-timer.C:
			return "", &UnresponsiveError{Timeout: timeout}
		}
	}
}

// Evaluate runs a depth-limited multipv search and parses the engine's info
// lines into a Result. A dead or desynchronized process yields a
// TerminatedError so the queue can restart it.
func (p *uciProcess) Evaluate(fen string, depth, multiPV int) (*Result, error) {
	if err := p.send(fmt.Sprintf("setoption name MultiPV value %d", multiPV)); err != nil {
		return nil, &TerminatedError{Stage: "search", Cause: err}
	}
	if err := p.send(fmt.Sprintf("position fen %s", fen)); err != nil {
		return nil, &TerminatedError{Stage: "search", Cause: err}
	}
	if err := p.send(fmt.Sprintf("go depth %d", depth)); err != nil {
		return nil, &TerminatedError{Stage: "search", Cause: err}
	}

	res := &Result{FEN: fen, Depth: depth, Lines: make([]Line, 0, multiPV)}
	timer := time.NewTimer(searchTimeout)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-p.lines:
			if !ok {
				return nil, &TerminatedError{Stage: "search", Cause: p.exitError()}
			}
			if strings.HasPrefix(line, "info ") {
				applyInfoLine(res, line)
				continue
			}
			if strings.HasPrefix(line, "bestmove") {
				fields := strings.Fields(line)
				if len(fields) > 1 && fields[1] != "(none)" {
					res.BestMove = fields[1]
				}
				return res, nil
			}
		case <-timer.C:
			return nil, &TerminatedError{Stage: "desync", Cause: fmt.Errorf("no bestmove within %s", searchTimeout)}
		}
	}
}

// Probe checks liveness with an isready round trip.
func (p *uciProcess) Probe(timeout time.Duration) error {
	if err := p.send("isready"); err != nil {
		return &TerminatedError{Stage: "probe", Cause: err}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-p.lines:
			if !ok {
				return &TerminatedError{Stage: "probe", Cause: p.exitError()}
			}
			if strings.Contains(line, "readyok") {
				return nil
			}
		case <-timer.C:
			return &UnresponsiveError{Timeout: timeout}
		}
	}
}

// Close asks the engine to quit and reaps the process, killing it if it
// ignores the request.
func (p *uciProcess) Close() error {
	p.send("quit")

	timer := time.NewTimer(2 * time.Second)
	defer timer.Stop()

	select {
	case <-p.waitCh:
		return nil
	case <-timer.C:
		p.kill()
		return nil
	}
}

func (p *uciProcess) kill() {
	p.killOnce.Do(func() { close(p.done) })
	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	select {
	case <-p.waitCh:
	case <-time.After(2 * time.Second):
	}
}

// exitError drains the wait channel without blocking forever; the Wait
// goroutine delivers shortly after EOF.
func (p *uciProcess) exitError() error {
	select {
	case err := <-p.waitCh:
		return err
	case <-time.After(2 * time.Second):
		return fmt.Errorf("engine output closed but process has not exited")
	}
}

// applyInfoLine folds one "info ..." line into the result. Engines emit one
// info line per completed iteration, so a later line for a multipv slot
// supersedes earlier shallower ones. Lines without a pv (currmove chatter,
// nps updates) are skipped.
func applyInfoLine(res *Result, line string) {
	fields := strings.Fields(line)

	var (
		multipv = 1
		scoreCP int
		mate    int
		pv      []string
	)

	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "multipv":
			if i+1 < len(fields) {
				multipv, _ = strconv.Atoi(fields[i+1])
			}
		case "score":
			if i+2 < len(fields) {
				switch fields[i+1] {
				case "cp":
					scoreCP, _ = strconv.Atoi(fields[i+2])
				case "mate":
					mate, _ = strconv.Atoi(fields[i+2])
				}
			}
		case "pv":
			pv = fields[i+1:]
			i = len(fields)
		}
	}

	if len(pv) == 0 || multipv < 1 {
		return
	}

	ln := Line{ScoreCP: scoreCP, Mate: mate, Moves: pv}
	for len(res.Lines) < multipv {
		res.Lines = append(res.Lines, Line{})
	}
	res.Lines[multipv-1] = ln
}
