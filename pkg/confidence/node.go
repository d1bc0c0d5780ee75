package confidence

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/notnil/chess"

	"mercator-hq/gambit/pkg/features"
)

// Display classifications. Color is a projection of a node's frozen score
// against a baseline; shape records how the node entered the tree.
const (
	ColorTrustworthy = "trustworthy"
	ColorSuspect     = "suspect"

	ShapeSpine  = "spine"
	ShapeBranch = "branch"
)

// Node is one position in an exploration tree. Nodes live in the tree's
// arena and link to each other by index, so growth never recurses and the
// whole structure can be walked iteratively.
//
// Score is computed once when the node is created and never rewritten.
// Classifying a node against a different baseline changes only how it is
// rendered.
type Node struct {
	ID     string
	Parent int // arena index, -1 for the root
	Kids   []int

	Ply   int
	FEN   string
	Move  string // UCI move that produced this position, empty at the root
	Spine bool   // grown along the deep principal variation

	Score      int // frozen, 0-100
	Unresolved bool
	Terminal   string // "checkmate" or "stalemate", empty otherwise

	Facts features.Report
}

// Color classifies the node's frozen score against a baseline.
func (n *Node) Color(baseline int) string {
	if n.Score >= baseline {
		return ColorTrustworthy
	}
	return ColorSuspect
}

// Shape reports how the node should be drawn.
func (n *Node) Shape() string {
	if n.Spine {
		return ShapeSpine
	}
	return ShapeBranch
}

// Tree is the result of one analysis: an arena of nodes rooted at index 0,
// plus the baseline the analysis ran against.
type Tree struct {
	Baseline int
	Nodes    []Node
}

// Root returns the tree's root node. Every tree produced by Analyze has at
// least one node.
func (t *Tree) Root() *Node {
	return &t.Nodes[0]
}

// Walk visits every node in creation order.
func (t *Tree) Walk(fn func(n *Node)) {
	for i := range t.Nodes {
		fn(&t.Nodes[i])
	}
}

func newNode(fen string, parent, ply int, move string, spine bool, pos *chess.Position) Node {
	n := Node{
		ID:     uuid.NewString(),
		Parent: parent,
		Ply:    ply,
		FEN:    fen,
		Move:   move,
		Spine:  spine,
	}
	if pos != nil {
		n.Facts = features.Detect(pos)
	}
	return n
}

// RenderedNode is the serializable projection of a Node: frozen facts plus
// the classification computed against a specific baseline at render time.
type RenderedNode struct {
	ID         string              `json:"id"`
	ParentID   string              `json:"parent_id,omitempty"`
	Ply        int                 `json:"ply"`
	FEN        string              `json:"fen"`
	Move       string              `json:"move,omitempty"`
	Score      int                 `json:"score"`
	Color      string              `json:"color"`
	Shape      string              `json:"shape"`
	Unresolved bool                `json:"unresolved,omitempty"`
	Terminal   string              `json:"terminal,omitempty"`
	Tags       []features.Tag      `json:"tags,omitempty"`
	Roles      map[string][]string `json:"roles,omitempty"`
}

// Render projects the tree against a baseline. The baseline may differ from
// the one the analysis originally ran with; scores are untouched either way.
func (t *Tree) Render(baseline int) []RenderedNode {
	out := make([]RenderedNode, 0, len(t.Nodes))
	for i := range t.Nodes {
		n := &t.Nodes[i]
		rn := RenderedNode{
			ID:         n.ID,
			Ply:        n.Ply,
			FEN:        n.FEN,
			Move:       n.Move,
			Score:      n.Score,
			Color:      n.Color(baseline),
			Shape:      n.Shape(),
			Unresolved: n.Unresolved,
			Terminal:   n.Terminal,
			Tags:       n.Facts.Tags,
		}
		if n.Parent >= 0 {
			rn.ParentID = t.Nodes[n.Parent].ID
		}
		if len(n.Facts.Roles) > 0 {
			rn.Roles = make(map[string][]string, len(n.Facts.Roles))
			for sq, roles := range n.Facts.Roles {
				names := make([]string, len(roles))
				for j, r := range roles {
					names[j] = string(r)
				}
				rn.Roles[sq.String()] = names
			}
		}
		out = append(out, rn)
	}
	return out
}

// MarshalJSON renders the tree against its own baseline.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Baseline int            `json:"baseline"`
		Nodes    []RenderedNode `json:"nodes"`
	}{
		Baseline: t.Baseline,
		Nodes:    t.Render(t.Baseline),
	})
}
