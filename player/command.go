package player

import "sync"

// commandKind enumerates the closed set of worker commands.
type commandKind int

const (
	cmdPause commandKind = iota
	cmdResume
	cmdSetVolume
	cmdShutdown
)

// command is a single instruction pushed from the facade to the decode worker.
type command struct {
	kind   commandKind
	volume float64
}

// commandQueue is an unbounded FIFO. The UI side can always push without
// blocking; the worker drains everything pending before each unit of decoded
// work, so commands take priority over media data.
type commandQueue struct {
	mu    sync.Mutex
	items []command
}

func newCommandQueue() *commandQueue {
	return &commandQueue{}
}

func (q *commandQueue) push(c command) {
	q.mu.Lock()
	q.items = append(q.items, c)
	q.mu.Unlock()
}

func (q *commandQueue) pop() (command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return command{}, false
	}
	c := q.items[0]
	q.items = q.items[1:]
	return c, true
}
