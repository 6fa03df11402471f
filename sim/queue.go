package sim

import (
	"fmt"
	"strings"
)

// FIFO is a first-in first-out queue of entity ids waiting for a server.
type FIFO struct {
	ids []int
}

// Enqueue adds an id to the back of the queue.
func (q *FIFO) Enqueue(id int) {
	q.ids = append(q.ids, id)
}

// Dequeue removes and returns the front id. ok is false when empty.
func (q *FIFO) Dequeue() (id int, ok bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	id = q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// Len returns the number of waiting ids.
func (q *FIFO) Len() int {
	return len(q.ids)
}

func (q *FIFO) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range q.ids {
		sb.WriteString(fmt.Sprint(id))
		if i < len(q.ids)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
