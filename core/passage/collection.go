package passage

// Collection is an ordered container that partitions nodes into a
// valid sequence (items) and an invalid sequence. Clean moves nodes
// from one side to the other; nothing is ever deleted, so the union of
// the two sequences always equals the set of nodes ever appended plus
// any nodes cascaded up from children.
type Collection[T Node] struct {
	errorList
	items   []T
	invalid []Node
}

// NewCollection returns an empty collection.
func NewCollection[T Node]() *Collection[T] {
	return &Collection[T]{}
}

// Append pushes item onto the valid sequence regardless of its
// validity; Clean is what demotes invalid nodes.
func (c *Collection[T]) Append(item T) {
	c.items = append(c.items, item)
}

// Items returns the valid-side sequence in insertion order.
func (c *Collection[T]) Items() []T {
	return c.items
}

// InvalidItems returns the nodes demoted by Clean, in demotion order.
// Cascaded demotions from child collections land here too, so the
// sequence may mix node types.
func (c *Collection[T]) InvalidItems() []Node {
	return c.invalid
}

// Len returns the number of valid-side items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the valid side is empty.
func (c *Collection[T]) IsEmpty() bool {
	return len(c.items) == 0
}

// At returns the i-th valid item.
func (c *Collection[T]) At(i int) T {
	return c.items[i]
}

// First returns the first valid item, or the zero value when empty.
func (c *Collection[T]) First() T {
	var zero T
	if len(c.items) == 0 {
		return zero
	}
	return c.items[0]
}

// Last returns the last valid item, or the zero value when empty.
func (c *Collection[T]) Last() T {
	var zero T
	if len(c.items) == 0 {
		return zero
	}
	return c.items[len(c.items)-1]
}

// Errors aggregates the collection's own messages, then the invalid
// items', then the valid items', de-duplicated by message text with
// the first occurrence winning.
func (c *Collection[T]) Errors(includeChildren bool) []string {
	out := c.ownErrors()
	for _, it := range c.invalid {
		out = append(out, it.Errors(includeChildren)...)
	}
	for _, it := range c.items {
		out = append(out, it.Errors(includeChildren)...)
	}
	return dedupe(out)
}

// HasErrors reports whether any aggregated error exists.
func (c *Collection[T]) HasErrors() bool {
	return len(c.Errors(true)) > 0
}

// NoErrors is the negation of HasErrors.
func (c *Collection[T]) NoErrors() bool {
	return !c.HasErrors()
}

// Clean demotes every invalid item to the invalid sequence and, when
// chain is true, cleans each remaining item's child collection and
// merges those removals into this collection's invalid sequence too.
// The returned slice lists this level's demotions first, then the
// cascaded ones. Clean is idempotent: a second call removes nothing.
func (c *Collection[T]) Clean(chain bool) []Node {
	var removed []Node
	kept := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if it.Valid() {
			kept = append(kept, it)
			continue
		}
		c.invalid = append(c.invalid, it)
		removed = append(removed, it)
	}
	c.items = kept

	if chain {
		for _, it := range c.items {
			cascaded := it.cleanChildren(chain)
			c.invalid = append(c.invalid, cascaded...)
			removed = append(removed, cascaded...)
		}
	}
	return removed
}

// Union returns a new collection whose valid sequence is this one's
// followed by items. Duplicates are kept (sequence semantics, not set
// semantics); the receiver's own errors and invalid sequence carry
// over unchanged.
func (c *Collection[T]) Union(items []T) *Collection[T] {
	out := c.cloneShell()
	out.items = make([]T, 0, len(c.items)+len(items))
	out.items = append(out.items, c.items...)
	out.items = append(out.items, items...)
	return out
}

// Difference returns a new collection without the valid items that
// also appear, by identity, in items. The receiver's own errors and
// invalid sequence carry over unchanged.
func (c *Collection[T]) Difference(items []T) *Collection[T] {
	out := c.cloneShell()
	for _, it := range c.items {
		if !containsNode(items, it) {
			out.items = append(out.items, it)
		}
	}
	return out
}

func (c *Collection[T]) cloneShell() *Collection[T] {
	out := NewCollection[T]()
	out.errs = append([]string(nil), c.errs...)
	out.invalid = append([]Node(nil), c.invalid...)
	return out
}

func containsNode[T Node](items []T, target T) bool {
	for _, it := range items {
		if Node(it) == Node(target) {
			return true
		}
	}
	return false
}

// dedupe keeps the first occurrence of each message, preserving order.
func dedupe(msgs []string) []string {
	if len(msgs) < 2 {
		return msgs
	}
	seen := make(map[string]struct{}, len(msgs))
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
