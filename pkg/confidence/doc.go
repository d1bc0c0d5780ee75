// Package confidence scores how much a principal line can be trusted and
// grows exploration trees that separate settled continuations from ones
// needing deeper scrutiny.
//
// # Scoring
//
// Each position is searched twice through the request queue, once deep and
// once shallow. Three disagreement measures are folded into a single 0-100
// score: the centipawn gap between the two evaluations, whether the two
// searches pick different best moves, and how far the shallow evaluation
// drifts when its own chosen move is replayed one ply and re-judged by the
// deep search. The weighting coefficients are configuration, not constants.
//
// Scores are frozen at node creation. Rendering a tree against a different
// baseline re-colors nodes but never rewrites a score.
//
// # Tree growth
//
// The tree follows the deep principal variation one ply at a time. Nodes
// scoring below the baseline open alternative replies as branches; nodes at
// or above it never branch. Growth is an explicit work list over an arena
// of index-linked nodes, bounded by maximum ply, branches per node, and
// total node count.
//
// Oracle failures truncate only the affected subtree; the node is kept and
// marked unresolved. Checkmate, stalemate, and single-reply positions
// produce small but well-formed trees.
package confidence
