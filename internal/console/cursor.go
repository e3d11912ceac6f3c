package console

import "fmt"

// Cursor is the history recall position: either live typing or an index
// into the submitted commands. The zero value is live.
type Cursor struct {
	index    int
	recalled bool
}

// Live is the cursor for fresh typing.
var Live = Cursor{}

// IsLive reports whether the cursor points at live input.
func (c Cursor) IsLive() bool { return !c.recalled }

// Index returns the recalled index, ok is false when live.
func (c Cursor) Index() (int, bool) {
	if !c.recalled {
		return 0, false
	}
	return c.index, true
}

func (c Cursor) String() string {
	if !c.recalled {
		return "live"
	}
	return fmt.Sprintf("%d", c.index)
}

func at(i int) Cursor { return Cursor{index: i, recalled: true} }
