package scene

import (
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Tree renders the node hierarchy for inspection, one line per node with
// its attributes:
//
//	.
//	└── svg width=120 height=40
//	    ├── rect width=120 fill="#eee"
//	    └── text x=10 hello
func Tree(root Node) string {
	p := tp.New()
	addTree(p, root)
	return p.String()
}

func addTree(p tp.Tree, n Node) {
	if len(n.Children) == 0 {
		p.AddNode(label(n))
		return
	}
	branch := p.AddBranch(label(n))
	for _, child := range n.Children {
		addTree(branch, child)
	}
}

func label(n Node) string {
	var sb strings.Builder
	switch n.Tag {
	case "":
		sb.WriteString("#text")
	default:
		sb.WriteString(n.Tag)
	}
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		switch v := a.Value.(type) {
		case nil, bool:
		case string:
			sb.WriteByte('=')
			sb.WriteString(quoteIfNeeded(v))
		default:
			fmt.Fprintf(&sb, "=%v", v)
		}
	}
	if len(n.Style) > 0 {
		fmt.Fprintf(&sb, " style[%d]", len(n.Style))
	}
	if n.Text != "" {
		sb.WriteByte(' ')
		sb.WriteString(quoteIfNeeded(abbreviate(n.Text, 32)))
	}
	if n.CSS != "" {
		fmt.Fprintf(&sb, " css[%d bytes]", len(n.CSS))
	}
	return sb.String()
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"#=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
