package indicator

// queue is a bounded FIFO backing rolling-window indicators. Pushing into a
// full queue evicts the oldest value.
type queue struct {
	capacity int
	items    []float64
}

func newQueue(capacity int) *queue {
	return &queue{capacity: capacity, items: make([]float64, 0, capacity)}
}

// push appends v and returns the evicted value when the queue was already
// full.
func (q *queue) push(v float64) (float64, bool) {
	if len(q.items) < q.capacity {
		q.items = append(q.items, v)

		return 0, false
	}

	evicted := q.items[0]
	copy(q.items, q.items[1:])
	q.items[len(q.items)-1] = v

	return evicted, true
}

func (q *queue) len() int {
	return len(q.items)
}

func (q *queue) full() bool {
	return len(q.items) == q.capacity
}

func (q *queue) values() []float64 {
	return q.items
}

func (q *queue) reset() {
	q.items = q.items[:0]
}
