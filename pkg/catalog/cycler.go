package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Drawer puts one selection on the screen.
type Drawer interface {
	DrawSelection(sel Selection) error
}

func NewCycler(c *Catalog, d Drawer, p *Params, h *History, logger *zap.Logger) *Cycler {
	return &Cycler{
		catalog: c,
		d:       d,
		params:  p,
		h:       h,
		log:     logger.With(zap.String("via", "cycler")),
	}
}

// Cycler draws the catalog selections in turn.
type Cycler struct {
	mu      sync.RWMutex
	catalog *Catalog
	d       Drawer
	params  *Params
	h       *History
	log     *zap.Logger
}

func (c *Cycler) Catalog() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalog
}

// SetCatalog swaps the catalog and restarts from its first selection.
func (c *Cycler) SetCatalog(cat *Catalog) {
	c.mu.Lock()
	c.catalog = cat
	c.mu.Unlock()
	c.params.Seek(0)
}

// Show draws selection i and records it.
func (c *Cycler) Show(i int) error {
	sel, err := c.Catalog().Get(i)
	if err != nil {
		return err
	}

	start := time.Now()
	c.log.With(zap.Int("index", i), zap.String("first", sel.FirstLine)).Info("drawing")
	if err := c.d.DrawSelection(sel); err != nil {
		return errors.Wrapf(err, "draw selection %d", i)
	}

	c.h.Push(&HistoryLog{Index: i, Selection: sel, DrawnAt: start, Cost: time.Since(start)})
	c.params.Seek(i + 1)
	return nil
}

// Next draws the selection after the last one shown.
func (c *Cycler) Next() error {
	n := c.Catalog().Len()
	if n == 0 {
		return errors.Wrap(ErrNoSelection, "empty catalog")
	}
	return c.Show(c.params.Next(n))
}

// Run draws until ctx is done.
func (c *Cycler) Run(ctx context.Context) {
	timer := time.NewTimer(time.Nanosecond)
	defer timer.Stop()

	wakeupChan := c.params.WakeupChan()
	resetChan := c.params.ResetChan()

	for {
		select {
		case <-ctx.Done():
			return
		case <-wakeupChan:
			timer.Reset(time.Millisecond)
		case dur := <-resetChan:
			timer.Reset(dur)
		case <-timer.C:
			if c.params.Paused() {
				c.log.Info("cycle paused, skip...")
				continue
			}
			if err := c.Next(); err != nil {
				c.log.With(zap.Error(err)).Info("drawing failed")
				timer.Reset(c.params.ErrorWait)
			} else {
				timer.Reset(c.params.Interval())
			}
		}
	}
}
