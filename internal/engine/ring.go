package engine

import "github.com/san-kum/linesaver/internal/motion"

// Ring is a fixed arena of line slots with one rotating head. The slot
// after head always holds the oldest line, which makes the ring both the
// motion trail and the erase queue.
type Ring struct {
	slots []motion.Line
	head  int
}

func NewRing(n int) *Ring {
	if n < 1 {
		n = 1
	}
	return &Ring{slots: make([]motion.Line, n)}
}

func (r *Ring) Len() int  { return len(r.slots) }
func (r *Ring) Head() int { return r.head }

// Next is the slot about to be overwritten.
func (r *Ring) Next() int {
	return (r.head + 1) % len(r.slots)
}

func (r *Ring) index(i int) int {
	n := len(r.slots)
	return ((i % n) + n) % n
}

// At returns slot i, wrapped into range.
func (r *Ring) At(i int) motion.Line {
	return r.slots[r.index(i)]
}

func (r *Ring) Put(i int, l motion.Line) {
	r.slots[r.index(i)] = l
}

// Newest returns the line at head.
func (r *Ring) Newest() motion.Line {
	return r.slots[r.head]
}

// Rotate makes Next the new head.
func (r *Ring) Rotate() {
	r.head = r.Next()
}

// Walk visits every slot from oldest to newest, ending at head.
func (r *Ring) Walk(fn func(i int, l motion.Line)) {
	n := len(r.slots)
	for k := 1; k <= n; k++ {
		i := (r.head + k) % n
		fn(i, r.slots[i])
	}
}

// Lines returns the slots in Walk order.
func (r *Ring) Lines() []motion.Line {
	out := make([]motion.Line, 0, len(r.slots))
	r.Walk(func(_ int, l motion.Line) {
		out = append(out, l)
	})
	return out
}

func (r *Ring) Reset() {
	clear(r.slots)
	r.head = 0
}
