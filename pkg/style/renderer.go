package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/scrub/pkg/collection"
)

// Renderer produces scrub's terminal output. With color disabled every
// method falls back to plain, pipe-friendly text.
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer. color selects styled output.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// RenderCollection renders the collection's category/script tree.
func (r *Renderer) RenderCollection(coll *collection.Collection) string {
	if !r.color {
		var b strings.Builder
		fmt.Fprintf(&b, "%s (%d categories)\n", coll.OS, len(coll.Categories))
		for _, cat := range coll.Categories {
			renderPlain(&b, cat, 1)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	root := pterm.TreeNode{Text: TitleStyle.Render(coll.OS)}
	for _, cat := range coll.Categories {
		root.Children = append(root.Children, r.treeNode(cat))
	}

	rendered, err := pterm.DefaultTree.WithRoot(root).Srender()
	if err != nil {
		// pterm should not fail on a plain tree; degrade rather than drop output
		r2 := Renderer{color: false}
		return r2.RenderCollection(coll)
	}
	return strings.TrimRight(rendered, "\n")
}

func (r *Renderer) treeNode(node collection.Node) pterm.TreeNode {
	switch n := node.(type) {
	case *collection.Category:
		out := pterm.TreeNode{Text: TitleStyle.Render(n.Name)}
		for _, child := range n.Children {
			out.Children = append(out.Children, r.treeNode(child))
		}
		return out
	case *collection.Script:
		return pterm.TreeNode{Text: r.scriptLabel(n)}
	default:
		return pterm.TreeNode{}
	}
}

// scriptLabel renders a script name with its recommendation badge.
func (r *Renderer) scriptLabel(script *collection.Script) string {
	switch script.Recommend {
	case collection.RecommendStandard:
		return script.Name + " " + StandardStyle.Render("[standard]")
	case collection.RecommendStrict:
		return script.Name + " " + StrictStyle.Render("[strict]")
	default:
		return script.Name
	}
}

func renderPlain(b *strings.Builder, node collection.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *collection.Category:
		fmt.Fprintf(b, "%s%s/\n", indent, n.Name)
		for _, child := range n.Children {
			renderPlain(b, child, depth+1)
		}
	case *collection.Script:
		if tier := n.Recommend.String(); tier != "" {
			fmt.Fprintf(b, "%s%s [%s]\n", indent, n.Name, tier)
		} else {
			fmt.Fprintf(b, "%s%s\n", indent, n.Name)
		}
	}
}

// RenderError renders an error line for stderr.
func (r *Renderer) RenderError(err error) string {
	msg := fmt.Sprintf("Error: %v", err)
	if !r.color {
		return msg
	}
	return ErrorStyle.Render(msg)
}
