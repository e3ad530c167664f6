package assemble

import "github.com/specialistvlad/skeletongen/internal/emit"

// Block is an ordered sequence of items.
type Block struct {
	Items []Item
}

// Len returns the number of items.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Items)
}

func (b *Block) add(items ...Item) {
	b.Items = append(b.Items, items...)
}

// Item is one emitted node, or a standalone placeholder note when Note is
// set. Block openers carry their nested sections in Body and Alt.
type Item struct {
	Fragment emit.Fragment
	Note     string
	// Body is the primary section: then-branch, loop body, try body, unit
	// body, or the success path of a guarded operation.
	Body *Block
	// Alt is the second section: else-branch or catch handler. Nil when the
	// construct has none.
	Alt *Block
	// Guard is the caught exception type when a plain statement has been
	// split into success and error paths.
	Guard string
}

// IsNote reports whether the item is a placeholder comment only.
func (it Item) IsNote() bool {
	return it.Note != ""
}

// IsGuarded reports whether the item wraps a statement in try/catch.
func (it Item) IsGuarded() bool {
	return it.Guard != ""
}

func note(text string) Item {
	return Item{Note: emit.LineMarker(text)}
}
