// Package output renders repository previews as terminal text.
package output

import (
	"fmt"
	"io"

	"github.com/temirov/gitcat/internal/filetree"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
)

// TreeRenderer writes a filetree.Directory using box-drawing connectors.
type TreeRenderer struct {
	Styles Styles
}

// NewTreeRenderer constructs a TreeRenderer using styles.
func NewTreeRenderer(styles Styles) *TreeRenderer {
	return &TreeRenderer{Styles: styles}
}

// WriteTree writes one line per entry beneath directory, children in name order, each
// line starting with prefix.
func (renderer *TreeRenderer) WriteTree(writer io.Writer, directory *filetree.Directory, prefix string) error {
	if directory == nil {
		return nil
	}
	names := directory.Names()
	for index, name := range names {
		isLast := index == len(names)-1
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if isLast {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		child, _ := directory.Child(name)
		switch typed := child.(type) {
		case *filetree.Directory:
			if _, writeError := fmt.Fprintf(writer, "%s%s%s\n", prefix, connector, renderer.Styles.Directory.Render(name)); writeError != nil {
				return writeError
			}
			if nestedError := renderer.WriteTree(writer, typed, childPrefix); nestedError != nil {
				return nestedError
			}
		case *filetree.File:
			if _, writeError := fmt.Fprintf(writer, "%s%s%s\n", prefix, connector, name); writeError != nil {
				return writeError
			}
		}
	}
	return nil
}
