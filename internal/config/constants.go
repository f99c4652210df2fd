package config

const SourceFileExt = ".phi"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".phi"}

// Reserved member names computed by every collection
const (
	ThisName   = "this"
	LengthName = "length"
	SuperName  = "super"
)

// IsReservedName reports whether name is computed by collections and cannot be created.
func IsReservedName(name string) bool {
	return name == ThisName || name == LengthName || name == SuperName
}

// Limits
const (
	// MaxEvalDepth bounds nested evaluation so runaway recursion fails with an error.
	MaxEvalDepth = 10000
	// MaxParseDepth bounds parser recursion.
	MaxParseDepth = 1000
	// MaxUnnamedIndex bounds collection growth: creating an unnamed member at
	// this index or above fails with an AccessError.
	MaxUnnamedIndex = 1 << 24
)

// REPL settings
const (
	PromptMain  = "phi> "
	PromptCont  = "...  "
	HistoryFile = ".phi_history"
)
