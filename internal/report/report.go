// Package report assembles the repository preview printed by gitcat.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/temirov/gitcat/internal/filetree"
	"github.com/temirov/gitcat/internal/gitquery"
	"github.com/temirov/gitcat/internal/output"
	"github.com/temirov/gitcat/internal/utils"
)

const (
	// ReadmeFileName is the tracked path looked up when the readme is requested.
	ReadmeFileName = "README.md"

	summaryMarker          = "●"
	trackedLineFormat      = "%s %d tracked file(s)\n"
	untrackedLineFormat    = "%s %d untracked file(s)\n"
	ignoredLineFormat      = "%s %d gitignored file(s)\n"
	readmeSeparator        = "─── " + ReadmeFileName + " (as rendered on GitHub) ───"
	readmeMissingMessage   = "No " + ReadmeFileName + " found in tracked files."
	readReadmeErrorFormat  = "read %s: %w"
	writeReportErrorFormat = "write report: %w"
)

// Repository is the subset of gitquery.Client the assembler depends on.
type Repository interface {
	VerifyInsideRepository(ctx context.Context) error
	Snapshot(ctx context.Context) (gitquery.Snapshot, error)
}

// ReadFileFunc reads the file at name.
type ReadFileFunc func(name string) ([]byte, error)

// Options toggles optional report sections.
type Options struct {
	IncludeReadme bool
}

// Assembler composes the report from repository queries.
type Assembler struct {
	Repository Repository
	ReadFile   ReadFileFunc
	Styles     output.Styles
	Tree       *output.TreeRenderer
}

// NewAssembler constructs an Assembler that renders with styles.
func NewAssembler(repository Repository, readFile ReadFileFunc, styles output.Styles) *Assembler {
	return &Assembler{
		Repository: repository,
		ReadFile:   readFile,
		Styles:     styles,
		Tree:       output.NewTreeRenderer(styles),
	}
}

// Generate writes the complete report to writer. Nothing is written unless every step
// succeeds.
func (assembler *Assembler) Generate(ctx context.Context, writer io.Writer, options Options) error {
	if verifyError := assembler.Repository.VerifyInsideRepository(ctx); verifyError != nil {
		return verifyError
	}
	snapshot, snapshotError := assembler.Repository.Snapshot(ctx)
	if snapshotError != nil {
		return snapshotError
	}

	var buffer bytes.Buffer
	fmt.Fprintln(&buffer, assembler.Styles.Heading.Render(snapshot.RootName))
	if treeError := assembler.Tree.WriteTree(&buffer, filetree.Build(snapshot.Tracked), ""); treeError != nil {
		return treeError
	}

	fmt.Fprintln(&buffer)
	fmt.Fprintf(&buffer, trackedLineFormat, assembler.Styles.TrackedMarker.Render(summaryMarker), len(snapshot.Tracked))
	fmt.Fprintf(&buffer, untrackedLineFormat, assembler.Styles.UntrackedMarker.Render(summaryMarker), snapshot.UntrackedCount)
	fmt.Fprintf(&buffer, ignoredLineFormat, assembler.Styles.IgnoredMarker.Render(summaryMarker), snapshot.IgnoredCount)

	if options.IncludeReadme {
		if readmeError := assembler.writeReadme(&buffer, snapshot); readmeError != nil {
			return readmeError
		}
	}

	if _, writeError := buffer.WriteTo(writer); writeError != nil {
		return fmt.Errorf(writeReportErrorFormat, writeError)
	}
	return nil
}

// writeReadme appends the README.md found at the repository root.
func (assembler *Assembler) writeReadme(buffer *bytes.Buffer, snapshot gitquery.Snapshot) error {
	fmt.Fprintln(buffer)
	if !utils.ContainsString(snapshot.Tracked, ReadmeFileName) {
		fmt.Fprintln(buffer, assembler.Styles.Dimmed.Render(readmeMissingMessage))
		return nil
	}
	content, readError := assembler.ReadFile(filepath.Join(snapshot.TopLevel, ReadmeFileName))
	if readError != nil {
		return fmt.Errorf(readReadmeErrorFormat, ReadmeFileName, readError)
	}
	fmt.Fprintln(buffer, assembler.Styles.Dimmed.Render(readmeSeparator))
	fmt.Fprintln(buffer, string(content))
	return nil
}
