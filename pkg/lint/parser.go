package lint

import (
	"context"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/source"
)

// Parser turns source bytes into a Document.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/scanner) provide the concrete tokenizing logic.
//
// Implementations must be:
//   - deterministic for a given (language, path, content) tuple,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw bytes into a fully-populated Document.
	//
	// Parameters:
	//   - ctx: context for cancellation.
	//   - path: logical file path (for messages; must not be used for I/O).
	//   - content: raw bytes (must not be mutated by the implementation).
	//   - lang: the language profile describing comment and string syntax.
	//
	// Returns:
	//   - On success: a Document whose tokens cover the content and whose
	//     scopes all close after they open.
	//   - On error: nil and a descriptive error; no partial document is returned.
	Parse(ctx context.Context, path string, content []byte, lang config.LanguageConfig) (*source.Document, error)
}
