// Package frontier implements the URL Frontier of §4.3: a priority-ordered,
// deduplicated, per-host-polite queue of pending URLs. The priority queue
// itself is new (stdlib container/heap, no teacher analogue); the seen-set
// is backed by internal/cache the way the teacher keeps in-memory state with
// persistent snapshotting.
package frontier

import (
	"container/heap"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/cache"
)

// Entry is one URL pending crawl.
type Entry struct {
	QueueID  string
	URL      string
	Priority int
	Metadata json.RawMessage

	attempts int
	seq      int64 // FIFO tiebreaker within equal priority
}

// SeenStore persists the Frontier's dedup seen-set across process restarts.
// Implemented by internal/store/postgres against the queue_entry table.
type SeenStore interface {
	LoadSeenFingerprints(retentionDays int) ([]string, error)
	RecordSeenFingerprint(fingerprint, queueID, rawURL string) error
}

// Frontier is the process-wide URL queue described in §4.3/§5 ("process-wide
// state managed by the Frontier").
type Frontier struct {
	mu       sync.Mutex
	queues   map[string]*priorityHeap
	seen     *cache.TTLCache
	seenTTL  time.Duration
	seq      int64

	hostState map[string]*hostBudget
	defaultRatePerMin int

	persist SeenStore
}

type hostBudget struct {
	lastRequest time.Time
	perMinute   int
}

// New creates a Frontier. defaultRatePerMin is used for hosts the caller
// hasn't configured a specific rate for via SetHostRateLimit.
func New(defaultRatePerMin int, seenRetentionDays int, persist SeenStore) *Frontier {
	f := &Frontier{
		queues:    make(map[string]*priorityHeap),
		seen:      cache.New(time.Duration(seenRetentionDays)*24*time.Hour, time.Hour),
		seenTTL:   time.Duration(seenRetentionDays) * 24 * time.Hour,
		hostState: make(map[string]*hostBudget),
		defaultRatePerMin: defaultRatePerMin,
		persist:   persist,
	}
	if persist != nil {
		if fps, err := persist.LoadSeenFingerprints(seenRetentionDays); err == nil {
			for _, fp := range fps {
				f.seen.SetWithTTL(fp, true, f.seenTTL)
			}
		}
	}
	return f
}

// SetHostRateLimit configures the per-minute request budget for a host,
// derived from the owning Source's rate_limit_requests_per_minute (§3/§4.3).
func (f *Frontier) SetHostRateLimit(host string, perMinute int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hb := f.hostState[host]
	if hb == nil {
		hb = &hostBudget{}
		f.hostState[host] = hb
	}
	hb.perMinute = perMinute
}

// Fingerprint normalizes a URL (scheme+host lowercased, fragment stripped,
// query params sorted) and hashes it for dedup, per §4.3.
func Fingerprint(rawURL string) string {
	normalized := Normalize(rawURL)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Normalize applies the §4.3 URL normalization.
func Normalize(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	if u.RawQuery != "" {
		q := u.Query()
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for i, k := range keys {
			vals := q[k]
			sort.Strings(vals)
			for _, v := range vals {
				if b.Len() > 0 {
					b.WriteByte('&')
				}
				b.WriteString(k)
				b.WriteByte('=')
				b.WriteString(v)
			}
			_ = i
		}
		u.RawQuery = b.String()
	}
	return u.String()
}

// Add enqueues a URL. Returns false if the URL is already queued or was seen
// within the retention window (§4.3).
func (f *Frontier) Add(queueID, rawURL string, priority int, metadata json.RawMessage) bool {
	fp := Fingerprint(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Has(fp) {
		return false
	}
	f.seen.SetWithTTL(fp, true, f.seenTTL)
	if f.persist != nil {
		_ = f.persist.RecordSeenFingerprint(fp, queueID, rawURL)
	}

	q := f.queues[queueID]
	if q == nil {
		q = &priorityHeap{}
		heap.Init(q)
		f.queues[queueID] = q
	}
	f.seq++
	heap.Push(q, &Entry{QueueID: queueID, URL: rawURL, Priority: priority, Metadata: metadata, seq: f.seq})
	return true
}

// Next pops the highest-priority URL for queueID whose host rate budget
// allows another request right now. Returns nil if the queue is empty or
// every available entry's host is currently rate-limited.
func (f *Frontier) Next(queueID string) *Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := f.queues[queueID]
	if q == nil || q.Len() == 0 {
		return nil
	}

	// Scan in priority order; hold back entries whose host budget isn't
	// ready yet rather than blocking the whole queue on one slow host.
	var deferred []*Entry
	var chosen *Entry
	for q.Len() > 0 {
		e := heap.Pop(q).(*Entry)
		host := hostOf(e.URL)
		if f.hostReady(host) {
			chosen = e
			f.markHostUsed(host)
			break
		}
		deferred = append(deferred, e)
	}
	for _, d := range deferred {
		heap.Push(q, d)
	}
	return chosen
}

func (f *Frontier) hostReady(host string) bool {
	hb := f.hostState[host]
	if hb == nil {
		return true
	}
	rate := hb.perMinute
	if rate <= 0 {
		rate = f.defaultRatePerMin
	}
	if rate <= 0 {
		return true
	}
	minInterval := time.Minute / time.Duration(rate)
	return time.Since(hb.lastRequest) >= minInterval
}

func (f *Frontier) markHostUsed(host string) {
	hb := f.hostState[host]
	if hb == nil {
		hb = &hostBudget{}
		f.hostState[host] = hb
	}
	hb.lastRequest = time.Now()
}

// MarkDone is a no-op hook for symmetry with §4.3's contract; entries are
// already removed from the heap by Next. Kept for callers that want an
// explicit "I finished this entry" signal (e.g. for future metrics).
func (f *Frontier) MarkDone(e *Entry) {}

// MarkFailed re-enqueues the entry at a lower priority if retryable,
// otherwise drops it (still present in the seen-set, so it won't be
// re-discovered either).
func (f *Frontier) MarkFailed(e *Entry, retryable bool) {
	if e == nil || !retryable {
		return
	}
	e.attempts++
	if e.attempts > 3 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.queues[e.QueueID]
	if q == nil {
		q = &priorityHeap{}
		heap.Init(q)
		f.queues[e.QueueID] = q
	}
	e.Priority--
	heap.Push(q, e)
}

// Len reports the number of pending entries across all queues (for metrics).
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, q := range f.queues {
		total += q.Len()
	}
	return total
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return strings.ToLower(u.Host)
}

// priorityHeap is a max-heap on Priority, FIFO within equal priority.
type priorityHeap []*Entry

func (h priorityHeap) Len() int { return len(h) }
func (h priorityHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].seq < h[j].seq
}
func (h priorityHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *priorityHeap) Push(x interface{}) { *h = append(*h, x.(*Entry)) }
func (h *priorityHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
