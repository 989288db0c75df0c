package health

import (
	"sync"

	"github.com/google/uuid"
)

// YieldMonitor tracks items-per-page per crawl (§4.11). After consecutive
// pages below minExpectedPerPage reach abortAfterPages, it signals abort. A
// healthy page resets the counter.
type YieldMonitor struct {
	minExpectedPerPage int
	abortAfterPages    int
	alerts             *Handler

	mu          sync.Mutex
	belowStreak map[uuid.UUID]int
}

func NewYieldMonitor(minExpectedPerPage, abortAfterPages int, alerts *Handler) *YieldMonitor {
	return &YieldMonitor{
		minExpectedPerPage: minExpectedPerPage,
		abortAfterPages:    abortAfterPages,
		alerts:             alerts,
		belowStreak:        make(map[uuid.UUID]int),
	}
}

// RecordPage reports one page's item yield and returns true when the crawl
// should cooperatively abort.
func (m *YieldMonitor) RecordPage(crawlJobID uuid.UUID, itemsFound int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if itemsFound >= m.minExpectedPerPage {
		delete(m.belowStreak, crawlJobID)
		return false
	}

	m.belowStreak[crawlJobID]++
	streak := m.belowStreak[crawlJobID]

	if streak >= m.abortAfterPages {
		m.alerts.raise(SeverityCritical, "yield_abort", "crawl yield below threshold for too many consecutive pages", map[string]interface{}{
			"crawl_job_id": crawlJobID.String(),
			"streak":       streak,
		})
		return true
	}

	m.alerts.raise(SeverityWarning, "yield_low", "page yielded fewer items than expected", map[string]interface{}{
		"crawl_job_id": crawlJobID.String(),
		"items_found":  itemsFound,
		"streak":       streak,
	})
	return false
}

// Reset clears the streak for a crawl, used once a crawl job completes.
func (m *YieldMonitor) Reset(crawlJobID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.belowStreak, crawlJobID)
}
