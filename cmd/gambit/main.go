// Gambit is a chess analysis confidence service.
//
// It mediates access to a single external UCI engine process through a
// serialized request queue, grows confidence trees that compare deep and
// shallow evaluations of a position, and validates tactical candidates by
// simulating defensive replies.
//
// Usage:
//
//	# Start the service with default configuration
//	gambit run
//
//	# Start with a custom configuration file
//	gambit run --config /path/to/config.yaml
//
//	# One-shot confidence analysis, JSON tree to stdout
//	gambit analyze --fen "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
//
//	# Validate a tactical candidate
//	gambit validate --fen "..." --move d1d8
//
//	# Show version information
//	gambit version
package main

func main() {
	Execute()
}
