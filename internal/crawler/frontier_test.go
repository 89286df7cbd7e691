package crawler

import "testing"

func testScope() Scope {
	return Scope{Host: "site", PathPrefix: "/support"}
}

func TestFrontier_Offer_InScope(t *testing.T) {
	f := NewFrontier(testScope())

	if !f.Offer("https://site/support/faq") {
		t.Error("Offer() should accept an in-scope URL")
	}
	if f.Size() != 1 {
		t.Errorf("expected size 1, got %d", f.Size())
	}
}

func TestFrontier_Offer_OutOfScope(t *testing.T) {
	f := NewFrontier(testScope())

	if f.Offer("https://site/pricing") {
		t.Error("Offer() should reject a URL outside the path prefix")
	}
	if f.Offer("https://other/support/faq") {
		t.Error("Offer() should reject a URL on another host")
	}
	if f.Offer("") {
		t.Error("Offer() should reject an empty URL")
	}
	if !f.IsEmpty() {
		t.Error("expected empty frontier")
	}
}

func TestFrontier_Offer_DuplicateQueued(t *testing.T) {
	f := NewFrontier(testScope())

	f.Offer("https://site/support/faq")
	if f.Offer("https://site/support/faq") {
		t.Error("Offer() should suppress an already queued URL")
	}
	if f.Size() != 1 {
		t.Errorf("expected size 1, got %d", f.Size())
	}
}

func TestFrontier_Offer_TerminalURLs(t *testing.T) {
	f := NewFrontier(testScope())

	f.MarkVisited("https://site/support/done")
	f.MarkFailed("https://site/support/broken")

	if f.Offer("https://site/support/done") {
		t.Error("Offer() should reject a visited URL")
	}
	if f.Offer("https://site/support/broken") {
		t.Error("Offer() should reject a failed URL")
	}
}

func TestFrontier_Pop_FIFO(t *testing.T) {
	f := NewFrontier(testScope())

	urls := []string{
		"https://site/support/a",
		"https://site/support/b",
		"https://site/support/c",
	}
	for _, u := range urls {
		f.Offer(u)
	}

	for _, want := range urls {
		got, ok := f.Pop()
		if !ok {
			t.Fatal("Pop() returned not ok on non-empty queue")
		}
		if got != want {
			t.Errorf("Pop() = %q, want %q", got, want)
		}
	}

	if _, ok := f.Pop(); ok {
		t.Error("Pop() should return not ok on empty queue")
	}
}

func TestFrontier_StaleDuplicateTolerated(t *testing.T) {
	f := NewFrontier(testScope())

	// A URL can be re-offered after being popped but before going
	// terminal (a page that links to itself), leaving a stale entry in
	// the queue once it is marked visited.
	f.Offer("https://site/support/self")
	if got, _ := f.Pop(); got != "https://site/support/self" {
		t.Fatalf("unexpected pop result %q", got)
	}
	if !f.Offer("https://site/support/self") {
		t.Fatal("re-offer after pop should succeed before terminal marking")
	}
	f.MarkVisited("https://site/support/self")

	stale, ok := f.Pop()
	if !ok {
		t.Fatal("expected stale duplicate in queue")
	}
	if !f.IsVisited(stale) {
		t.Error("stale duplicate should be detectable via IsVisited")
	}
}

func TestFrontier_MarksIdempotent(t *testing.T) {
	f := NewFrontier(testScope())

	f.MarkVisited("https://site/support/a")
	f.MarkVisited("https://site/support/a")
	f.MarkFailed("https://site/support/b")
	f.MarkFailed("https://site/support/b")

	if f.VisitedCount() != 1 {
		t.Errorf("expected 1 visited, got %d", f.VisitedCount())
	}
	if f.FailedCount() != 1 {
		t.Errorf("expected 1 failed, got %d", f.FailedCount())
	}
}

func TestFrontier_FailedURLsSorted(t *testing.T) {
	f := NewFrontier(testScope())

	f.MarkFailed("https://site/support/z")
	f.MarkFailed("https://site/support/a")
	f.MarkFailed("https://site/support/m")

	got := f.FailedURLs()
	want := []string{
		"https://site/support/a",
		"https://site/support/m",
		"https://site/support/z",
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d failed URLs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FailedURLs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
