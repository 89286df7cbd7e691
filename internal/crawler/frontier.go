package crawler

import (
	"sort"
	"sync"
)

// Frontier holds the crawl state: a FIFO queue of canonical URLs waiting to
// be processed plus the visited and failed terminal sets. The orchestrator
// is the only writer in the sequential design; the mutex keeps the type safe
// for a bounded-worker variant.
type Frontier struct {
	mu      sync.Mutex
	scope   Scope
	queue   []string
	queued  map[string]bool
	visited map[string]struct{}
	failed  map[string]struct{}
}

// NewFrontier creates an empty frontier bound to a scope.
func NewFrontier(scope Scope) *Frontier {
	return &Frontier{
		scope:   scope,
		queued:  make(map[string]bool),
		visited: make(map[string]struct{}),
		failed:  make(map[string]struct{}),
	}
}

// Offer enqueues a canonical URL if it is in scope and not already visited,
// failed or queued. The queued check is best-effort dedup only; the caller
// must still re-check terminal sets at pop time.
func (f *Frontier) Offer(canonical string) bool {
	if canonical == "" || !f.scope.Contains(canonical) {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[canonical]; ok {
		return false
	}
	if _, ok := f.failed[canonical]; ok {
		return false
	}
	if f.queued[canonical] {
		return false
	}

	f.queued[canonical] = true
	f.queue = append(f.queue, canonical)
	return true
}

// Pop removes and returns the next URL in FIFO order. The queue may carry
// stale duplicates of URLs that went terminal after being enqueued; callers
// must check IsVisited/IsFailed before processing.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}

	head := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.queued, head)
	return head, true
}

// MarkVisited moves a URL into the visited terminal set. Idempotent.
func (f *Frontier) MarkVisited(canonical string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited[canonical] = struct{}{}
}

// MarkFailed moves a URL into the failed terminal set. Idempotent.
func (f *Frontier) MarkFailed(canonical string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed[canonical] = struct{}{}
}

// IsVisited reports whether a URL is in the visited set.
func (f *Frontier) IsVisited(canonical string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.visited[canonical]
	return ok
}

// IsFailed reports whether a URL is in the failed set.
func (f *Frontier) IsFailed(canonical string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.failed[canonical]
	return ok
}

// Size returns the number of queued URLs.
func (f *Frontier) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// IsEmpty reports whether the queue is empty.
func (f *Frontier) IsEmpty() bool {
	return f.Size() == 0
}

// VisitedCount returns the size of the visited set.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// FailedCount returns the size of the failed set.
func (f *Frontier) FailedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.failed)
}

// FailedURLs returns the failed set as a sorted slice, so the output
// artifact is stable across runs.
func (f *Frontier) FailedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	urls := make([]string, 0, len(f.failed))
	for u := range f.failed {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
