// Package tactics decides whether a candidate tactical idea actually
// survives best defense, by simulation rather than pattern matching.
//
// The validator plays the candidate move, curates the opponent's plausible
// defensive replies (the engine's preferred defense, captures, checks, and
// quiet moves that defuse the new threat), and follows each reply to a
// terminal judgement. Capture sequences are settled by a small greedy
// interpreter that picks the highest victim with the cheapest attacker and
// may decline a losing recapture; forced mates on either side are taken
// from the engine's search.
//
// A candidate is accepted only when every defense still loses material or
// gets mated. One defense holding the balance rejects it, and the verdict
// is always returned with the concrete line that proves it. When the
// simulation cannot decide within its bounds the verdict is ambiguous,
// which is terminal and distinct from rejected.
package tactics
