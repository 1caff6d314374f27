// Package clipboard copies rendered reports to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
// Terminal escape sequences are removed before the text reaches the clipboard.
type Service struct {
	write func(string) error
}

// NewService constructs a clipboard service backed by the system clipboard.
func NewService() *Service {
	return &Service{write: clipboard.WriteAll}
}

// Copy writes text without ANSI styling to the system clipboard.
func (service *Service) Copy(text string) error {
	return service.write(ansi.Strip(text))
}

var _ Copier = (*Service)(nil)
