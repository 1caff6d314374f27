// Package filetree builds a hierarchical view of repository-relative file paths.
package filetree

import (
	"fmt"
	"sort"
	"strings"
)

const (
	pathSeparator = "/"

	descendThroughFileMessageFormat = "filetree: %q is a file but is used as a directory"
)

// Node is either a *File or a *Directory.
type Node interface {
	isNode()
}

// File is a leaf entry in the tree.
type File struct{}

func (*File) isNode() {}

// Directory maps single path segments to child nodes.
type Directory struct {
	children map[string]Node
}

func (*Directory) isNode() {}

// NewDirectory returns an empty directory node.
func NewDirectory() *Directory {
	return &Directory{children: map[string]Node{}}
}

// Build converts a flat list of slash-separated paths into a tree rooted at an empty directory.
// Empty segments produced by leading, trailing or doubled separators are dropped, and a path
// without any non-empty segment is skipped. Inserting the same path more than once is a no-op.
func Build(paths []string) *Directory {
	root := NewDirectory()
	for _, path := range paths {
		root.insert(path)
	}
	return root
}

func (directory *Directory) insert(path string) {
	segments := splitSegments(path)
	if len(segments) == 0 {
		return
	}
	current := directory
	for index := range segments[:len(segments)-1] {
		current = current.directoryFor(segments, index)
	}
	leafName := segments[len(segments)-1]
	if _, exists := current.children[leafName]; !exists {
		current.children[leafName] = &File{}
	}
}

// directoryFor returns the child directory called segments[index], creating it when absent.
// Reaching an existing file here means the input listed a path both as a file and as a
// directory, which git never produces.
func (directory *Directory) directoryFor(segments []string, index int) *Directory {
	name := segments[index]
	existing, exists := directory.children[name]
	if !exists {
		created := NewDirectory()
		directory.children[name] = created
		return created
	}
	switch typed := existing.(type) {
	case *Directory:
		return typed
	default:
		panic(fmt.Sprintf(descendThroughFileMessageFormat, strings.Join(segments[:index+1], pathSeparator)))
	}
}

func splitSegments(path string) []string {
	rawSegments := strings.Split(path, pathSeparator)
	segments := make([]string, 0, len(rawSegments))
	for _, segment := range rawSegments {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// Names returns the child names in ascending lexicographic order.
func (directory *Directory) Names() []string {
	names := make([]string, 0, len(directory.children))
	for name := range directory.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Child looks up a direct child by name.
func (directory *Directory) Child(name string) (Node, bool) {
	child, exists := directory.children[name]
	return child, exists
}

// Len reports the number of direct children.
func (directory *Directory) Len() int {
	return len(directory.children)
}

// Paths flattens the tree back into sorted slash-separated file paths.
func (directory *Directory) Paths() []string {
	var collected []string
	directory.collectPaths("", &collected)
	return collected
}

func (directory *Directory) collectPaths(prefix string, collected *[]string) {
	for _, name := range directory.Names() {
		childPath := name
		if prefix != "" {
			childPath = prefix + pathSeparator + name
		}
		switch child := directory.children[name].(type) {
		case *Directory:
			child.collectPaths(childPath, collected)
		case *File:
			*collected = append(*collected, childPath)
		}
	}
}

// FileCount reports the number of file leaves beneath the directory.
func (directory *Directory) FileCount() int {
	count := 0
	for _, child := range directory.children {
		switch typed := child.(type) {
		case *Directory:
			count += typed.FileCount()
		case *File:
			count++
		}
	}
	return count
}
