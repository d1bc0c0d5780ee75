package features

import (
	"sort"

	"github.com/notnil/chess"
)

// Tag is a named structural fact about a position as a whole, prefixed with
// the color it applies to (e.g. "white:king-exposed").
type Tag string

// Role is a named action label attached to one (position, square) pair
// (e.g. the piece on that square is "pinned").
type Role string

// Position-level tag bases. Emitted with a color prefix via colorTag.
const (
	TagKingExposed    = "king-exposed"
	TagKingOpenFile   = "king-open-file"
	TagDoubledPawns   = "doubled-pawns"
	TagIsolatedPawns  = "isolated-pawns"
	TagBishopPair     = "bishop-pair"
	TagRookOnSeventh  = "rook-on-seventh"
	TagHangingPiece   = "hanging-piece"
	TagTacticalMotifs = "tactical-motifs"
)

// Per-square roles.
const (
	RolePinned            Role = "pinned"
	RolePinning           Role = "pinning"
	RoleForking           Role = "forking"
	RoleSkewering         Role = "skewering"
	RoleOverworked        Role = "overworked"
	RoleHanging           Role = "hanging"
	RoleSoleDefender      Role = "sole-defender"
	RoleAttacksUndefended Role = "attacks-undefended"
	RolePassedPawn        Role = "passed-pawn"
	RoleIsolatedPawn      Role = "isolated-pawn"
	RoleRookOpenFile      Role = "rook-open-file"
	RoleRookSemiOpenFile  Role = "rook-semi-open-file"
	RoleLongDiagonal      Role = "bishop-long-diagonal"
)

// Report is the combined detector output for one position. Tags and role
// lists are sorted, so two reports for the same position compare equal.
type Report struct {
	// Tags are position-level facts.
	Tags []Tag

	// Roles maps a square to the action labels of the piece on it. Squares
	// without findings are absent.
	Roles map[chess.Square][]Role
}

// HasTag reports whether the report carries the given tag.
func (r *Report) HasTag(t Tag) bool {
	for _, have := range r.Tags {
		if have == t {
			return true
		}
	}
	return false
}

// HasRole reports whether the piece on sq carries the given role.
func (r *Report) HasRole(sq chess.Square, role Role) bool {
	for _, have := range r.Roles[sq] {
		if have == role {
			return true
		}
	}
	return false
}

// addTag appends a tag, duplicates allowed here; normalize dedups.
func (r *Report) addTag(t Tag) {
	r.Tags = append(r.Tags, t)
}

func (r *Report) addRole(sq chess.Square, role Role) {
	if r.Roles == nil {
		r.Roles = make(map[chess.Square][]Role)
	}
	r.Roles[sq] = append(r.Roles[sq], role)
}

// normalize sorts and dedups tags and role lists so output order never
// depends on detector iteration order.
func (r *Report) normalize() {
	sort.Slice(r.Tags, func(i, j int) bool { return r.Tags[i] < r.Tags[j] })
	r.Tags = dedupTags(r.Tags)
	for sq, roles := range r.Roles {
		sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
		r.Roles[sq] = dedupRoles(roles)
	}
}

func dedupTags(in []Tag) []Tag {
	out := in[:0]
	var prev Tag
	for i, t := range in {
		if i == 0 || t != prev {
			out = append(out, t)
		}
		prev = t
	}
	return out
}

func dedupRoles(in []Role) []Role {
	out := in[:0]
	var prev Role
	for i, t := range in {
		if i == 0 || t != prev {
			out = append(out, t)
		}
		prev = t
	}
	return out
}

func colorTag(c chess.Color, base string) Tag {
	if c == chess.White {
		return Tag("white:" + base)
	}
	return Tag("black:" + base)
}

// pieceValue is the conventional material scale in centipawns. The king's
// value only matters for ordering comparisons, where it must dominate.
func pieceValue(t chess.PieceType) int {
	switch t {
	case chess.Pawn:
		return 100
	case chess.Knight:
		return 320
	case chess.Bishop:
		return 330
	case chess.Rook:
		return 500
	case chess.Queen:
		return 900
	case chess.King:
		return 20000
	}
	return 0
}
