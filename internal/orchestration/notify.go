package orchestration

import "sync"

// notifier runs presenter calls one at a time, in the order they were
// issued. A call issued while another runs, including one issued from inside
// a presenter method, is queued and run by the goroutine already notifying
// once the running call returns.
type notifier struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

func (n *notifier) notify(call func()) {
	n.mu.Lock()
	n.queue = append(n.queue, call)
	if n.running {
		n.mu.Unlock()
		return
	}
	n.running = true
	for len(n.queue) > 0 {
		next := n.queue[0]
		n.queue[0] = nil
		n.queue = n.queue[1:]
		n.mu.Unlock()
		next()
		n.mu.Lock()
	}
	n.running = false
	n.mu.Unlock()
}
