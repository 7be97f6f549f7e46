package format

import (
	"strings"

	"github.com/cuptool/cuptool/internal/clickup"
)

// Node is one entry of a renderable tree.
type Node struct {
	Label    string
	Children []*Node
}

// Add appends a child node and returns it for further nesting.
func (n *Node) Add(label string) *Node {
	child := &Node{Label: label}
	n.Children = append(n.Children, child)
	return child
}

// RenderTree renders the node and its descendants using box-drawing
// characters:
//
//	Sprint 12
//	├── abc123  [to do] Fix login flow
//	│   └── def456  [to do] Add tests
//	└── ghi789  [done] Update docs
func RenderTree(root *Node) string {
	var sb strings.Builder
	sb.WriteString(root.Label)
	sb.WriteString("\n")
	renderChildren(&sb, root.Children, "")
	return strings.TrimRight(sb.String(), "\n")
}

func renderChildren(sb *strings.Builder, children []*Node, prefix string) {
	for i, child := range children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(child.Label)
		sb.WriteString("\n")
		renderChildren(sb, child.Children, childPrefix)
	}
}

// TaskTree arranges tasks under a root label, nesting subtasks below
// their parent. Subtasks whose parent is not in the slice appear at
// the top level so nothing silently disappears.
func TaskTree(rootLabel string, tasks []clickup.Task) *Node {
	root := &Node{Label: rootLabel}

	nodes := make(map[string]*Node, len(tasks))
	for i := range tasks {
		nodes[tasks[i].ID] = &Node{Label: CompactTask(&tasks[i])}
	}

	for i := range tasks {
		t := &tasks[i]
		if t.Parent != "" {
			if parent, ok := nodes[t.Parent]; ok {
				parent.Children = append(parent.Children, nodes[t.ID])
				continue
			}
		}
		root.Children = append(root.Children, nodes[t.ID])
	}
	return root
}

// SpaceTree arranges a space's folders and lists into a tree. The
// folderless lists appear directly under the space.
func SpaceTree(space *clickup.Space, folders []clickup.Folder, folderless []clickup.List) *Node {
	root := &Node{Label: space.Name}

	for _, folder := range folders {
		fn := root.Add(folder.Name)
		for _, list := range folder.Lists {
			fn.Add(list.ID + "  " + list.Name)
		}
	}
	for _, list := range folderless {
		root.Add(list.ID + "  " + list.Name)
	}
	return root
}
