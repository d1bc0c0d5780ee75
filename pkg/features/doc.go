// Package features extracts structural facts from chess positions.
//
// # Overview
//
// Detect runs a fixed registry of independent detectors over a position and
// returns a Report of Tags (position-level facts such as "white:king-exposed")
// and Roles (per-square action labels such as "pinned" or "overworked").
// Detectors share only the position and its derived attack geometry; none
// reads another's output, so registry order cannot influence the result.
//
// Detect is deterministic and pure. Calling it twice on the same position
// yields identical reports, and the position itself is never mutated:
// detectors that need to ask "what if this piece were captured?" operate on
// scratch copies of the piece placement.
//
// # Families
//
//   - pawn structure: doubled, isolated, passed pawns
//   - king safety: thin pawn shields, open files near the king
//   - line control: rook open/semi-open files, seventh rank, long diagonals
//   - piece activity: hanging pieces, attacks on undefended material,
//     sole-defender burdens
//   - tactical motifs: pins, forks, skewers, overworked pieces
//
// The confidence engine attaches reports to tree nodes; the tactic
// validator uses roles to identify threat targets worth defending.
package features
