package catalog

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

func NewHistory(max int) *History {
	return &History{max: max}
}

type History struct {
	mu    sync.Mutex
	max   int
	items []*HistoryLog
}

type HistoryLog struct {
	Index     int
	Selection Selection
	DrawnAt   time.Time
	Cost      time.Duration
}

func (h *History) Push(item *HistoryLog) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, item)
	if h.max > 0 && len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

func (h *History) Logs() []*HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*HistoryLog(nil), h.items...)
}

func (h *History) Curr() *HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	log, _ := lo.Last(h.items)
	return log
}

func (h *History) Prev() *HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	log, _ := lo.Nth(h.items, -2)
	return log
}
