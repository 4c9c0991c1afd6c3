package fold

import (
	"container/list"
	"context"

	"pymer-core/scan"
)

// Memo is a size-bounded LRU memo in front of a Folder. Not safe for
// concurrent use.
type Memo struct {
	next scan.Folder
	cap  int
	ll   *list.List
	m    map[string]*list.Element

	Hits   int
	Misses int
}

type memoNode struct {
	seq string
	dg  float64
}

// NewMemo wraps next. capacity <= 0 selects a default of 4096 entries.
func NewMemo(next scan.Folder, capacity int) *Memo {
	if capacity <= 0 {
		capacity = 4096
	}
	return &Memo{next: next, cap: capacity, ll: list.New(), m: make(map[string]*list.Element, capacity)}
}

// Fold returns the remembered energy for seq or asks the wrapped Folder.
// Errors are not remembered.
func (c *Memo) Fold(ctx context.Context, seq string) (float64, error) {
	if e, ok := c.m[seq]; ok {
		c.ll.MoveToFront(e)
		c.Hits++
		return e.Value.(*memoNode).dg, nil
	}
	dg, err := c.next.Fold(ctx, seq)
	if err != nil {
		return 0, err
	}
	c.Misses++
	c.m[seq] = c.ll.PushFront(&memoNode{seq: seq, dg: dg})
	if c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(*memoNode).seq)
		}
	}
	return dg, nil
}

// Len reports how many sequences are remembered.
func (c *Memo) Len() int { return c.ll.Len() }
