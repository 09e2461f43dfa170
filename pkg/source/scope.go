package source

// ScopeKind classifies a bracketed region.
type ScopeKind uint8

// Scope kinds, one per bracket pair plus the file root.
const (
	ScopeFile       ScopeKind = iota
	ScopeBlock                // { ... }
	ScopeParams               // ( ... )
	ScopeCollection           // [ ... ]
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "File"
	case ScopeBlock:
		return "Block"
	case ScopeParams:
		return "Params"
	case ScopeCollection:
		return "Collection"
	default:
		return "Unknown"
	}
}

// ScopeKindFor returns the scope kind opened by a token kind.
func ScopeKindFor(open TokenKind) ScopeKind {
	switch open {
	case TokLBrace:
		return ScopeBlock
	case TokLParen:
		return ScopeParams
	case TokLBracket:
		return ScopeCollection
	default:
		return ScopeFile
	}
}

// ScopeItem is one entry of a scope's ordered contents: either a token
// index or a nested scope.
type ScopeItem struct {
	// Token is the token index, or -1 when the item is a scope.
	Token int

	// Scope is the nested scope, or nil when the item is a token.
	Scope *Scope
}

// IsScope reports whether the item is a nested scope.
func (it ScopeItem) IsScope() bool {
	return it.Scope != nil
}

// Scope is a region delimited by a matching bracket pair. Ownership flows
// from parent to child through Items; Parent is a navigation back-reference.
type Scope struct {
	// Kind identifies the bracket pair.
	Kind ScopeKind

	// Open is the index of the opening token, or -1 for the file root.
	Open int

	// Close is the index of the closing token, or -1 for the file root.
	Close int

	// Parent is the enclosing scope, nil for the root.
	Parent *Scope

	// Items are the tokens and nested scopes between Open and Close, in order.
	Items []ScopeItem
}

// NewRootScope returns an empty file-level scope.
func NewRootScope() *Scope {
	return &Scope{Kind: ScopeFile, Open: -1, Close: -1}
}

// IsRoot reports whether the scope is the file root.
func (s *Scope) IsRoot() bool {
	return s.Parent == nil
}

// Children returns the nested scopes in order.
func (s *Scope) Children() []*Scope {
	var out []*Scope
	for _, it := range s.Items {
		if it.Scope != nil {
			out = append(out, it.Scope)
		}
	}
	return out
}

// TokenIndices returns the indices of tokens held directly by the scope.
func (s *Scope) TokenIndices() []int {
	var out []int
	for _, it := range s.Items {
		if it.Scope == nil {
			out = append(out, it.Token)
		}
	}
	return out
}

// Depth returns the number of ancestors of the scope.
func (s *Scope) Depth() int {
	depth := 0
	for p := s.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// IsEmpty reports whether the scope holds no code tokens.
func (s *Scope) IsEmpty(doc *Document) bool {
	for _, it := range s.Items {
		if it.Scope != nil {
			return false
		}
		if doc.Tokens[it.Token].Kind.IsCode() {
			return false
		}
	}
	return true
}

// ScopeWalkFunc is the callback signature for WalkScopes.
// Return a non-nil error to stop the walk.
type ScopeWalkFunc func(s *Scope) error

// WalkScopes performs a pre-order traversal of the scope tree.
func WalkScopes(root *Scope, fn ScopeWalkFunc) error {
	if root == nil {
		return nil
	}

	if err := fn(root); err != nil {
		return err
	}

	for _, it := range root.Items {
		if it.Scope == nil {
			continue
		}
		if err := WalkScopes(it.Scope, fn); err != nil {
			return err
		}
	}

	return nil
}

// FindScopes returns all scopes matching the predicate, in pre-order.
func FindScopes(root *Scope, predicate func(s *Scope) bool) []*Scope {
	var result []*Scope

	//nolint:errcheck,revive // the callback never fails
	WalkScopes(root, func(s *Scope) error {
		if predicate(s) {
			result = append(result, s)
		}
		return nil
	})

	return result
}

// Blocks returns all brace-delimited scopes in pre-order.
func Blocks(root *Scope) []*Scope {
	return FindScopes(root, func(s *Scope) bool {
		return s.Kind == ScopeBlock
	})
}
