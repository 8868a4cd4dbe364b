package passage

// errorList is the error-tracking state shared by every node type and
// by Collection. Messages keep insertion order; duplicates are kept
// here and suppressed only when a collection aggregates them.
type errorList struct {
	errs []string
}

// AddError records a message on this value's own error list.
func (e *errorList) AddError(msg string) {
	e.errs = append(e.errs, msg)
}

// ClearErrors drops every message recorded so far.
func (e *errorList) ClearErrors() {
	e.errs = nil
}

// ownErrors returns a copy of the own-error list.
func (e *errorList) ownErrors() []string {
	return append([]string(nil), e.errs...)
}

// Node is the common surface of Book, Chapter and Verse: error
// tracking plus the validity predicate Collection.Clean relies on.
type Node interface {
	AddError(msg string)
	ClearErrors()

	// Errors returns the node's own messages, followed by its child
	// collection's messages when includeChildren is true.
	Errors(includeChildren bool) []string
	HasErrors() bool
	NoErrors() bool

	// Valid reports whether the node's identifying field is present: a
	// resolved name for books, a positive number for chapters and
	// verses. Invalid nodes are still fully usable objects.
	Valid() bool

	// cleanChildren cleans the node's child collection, if any, and
	// returns the nodes it demoted.
	cleanChildren(chain bool) []Node
}
