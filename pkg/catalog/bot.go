package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/samber/lo"
	tele "gopkg.in/telebot.v3"

	"epaper/pkg/proto"
)

// Reloader returns a fresh catalog.
type Reloader func() (*Catalog, error)

func NewBot(token string, dev proto.Control, cycler *Cycler, params *Params, h *History, reload Reloader) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:       b,
		control: newControl(dev, cycler, params, h, reload),
	}, nil
}

type Bot struct {
	b *tele.Bot
	*control
}

func (b *Bot) Start() {
	for cmd, fn := range b.handlers() {
		b.b.Handle(cmd, func(context tele.Context) error {
			return context.Reply(fn(context.Message().Payload))
		})
	}
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}

func newControl(dev proto.Control, cycler *Cycler, params *Params, h *History, reload Reloader) *control {
	return &control{
		dev:         dev,
		cycler:      cycler,
		params:      params,
		h:           h,
		reload:      reload,
		syncTimeout: 5 * time.Second,
	}
}

// control answers bot commands, independent of the chat transport.
type control struct {
	dev         proto.Control
	cycler      *Cycler
	params      *Params
	h           *History
	reload      Reloader
	syncTimeout time.Duration
}

func (c *control) handlers() map[string]func(payload string) string {
	return map[string]func(string) string{
		"/list":     c.list,
		"/show":     c.show,
		"/info":     c.info,
		"/pause":    c.pause,
		"/resume":   c.resume,
		"/interval": c.interval,
		"/reload":   c.reloadCatalog,
		"/sync":     c.sync,
		"/stats":    c.stats,
	}
}

func (c *control) list(string) string {
	sels := c.cycler.Catalog().Selections
	if len(sels) == 0 {
		return "Catalog is empty"
	}

	lines := lo.Map(sels, func(s Selection, i int) string {
		return fmt.Sprintf("%d. %s - %s", i+1, s.FirstLine, s.PriceText())
	})
	return strings.Join(lines, "\n")
}

func (c *control) show(payload string) string {
	n, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return "Usage: /show N"
	}

	if err := c.cycler.Show(n - 1); err != nil {
		return fmt.Sprintf("show failed: %s", err)
	}

	c.params.Reset(c.params.Interval())
	return "OK"
}

func (c *control) info(string) string {
	log := c.h.Curr()
	if log == nil {
		return "Current no selection"
	}

	lines := []string{
		fmt.Sprintf("Item: %d", log.Index+1),
		fmt.Sprintf("Name: %s", log.Selection.FirstLine),
		fmt.Sprintf("Slogan: %s", log.Selection.SecondLine),
		fmt.Sprintf("Price: %s", log.Selection.PriceText()),
		fmt.Sprintf("Drawn at: %s", log.DrawnAt.Format(time.DateTime)),
		fmt.Sprintf("Cost: %s", log.Cost.Round(time.Millisecond)),
		fmt.Sprintf("Paused: %s", lo.Ternary(c.params.Paused(), "yes", "no")),
	}
	return strings.Join(lines, "\n")
}

func (c *control) pause(string) string {
	c.params.Pause()
	return "OK"
}

func (c *control) resume(string) string {
	c.params.Wakeup()
	return "OK"
}

func (c *control) interval(payload string) string {
	if payload == "" {
		return c.params.Interval().String()
	}

	duration, err := time.ParseDuration(payload)
	if err != nil {
		return fmt.Sprintf("change failed: %s", err)
	}

	c.params.SetInterval(duration)
	c.params.Reset(duration)
	return "OK"
}

func (c *control) reloadCatalog(string) string {
	if c.reload == nil {
		return "Reload not configured"
	}

	cat, err := c.reload()
	if err != nil {
		return fmt.Sprintf("reload failed: %s", err)
	}

	c.cycler.SetCatalog(cat)
	return fmt.Sprintf("Reloaded, %d items", cat.Len())
}

func (c *control) sync(string) string {
	if err := c.dev.Sync(c.syncTimeout); err != nil {
		return fmt.Sprintf("sync failed: %s", err)
	}
	return fmt.Sprintf("OK, backlog %d", c.dev.Backlog())
}

func (c *control) stats(string) string {
	s := c.dev.Stats()
	lines := []string{
		fmt.Sprintf("Frames: %d", s.Frames),
		fmt.Sprintf("Sent: %s", bytesize.New(float64(s.Sent)).String()),
		fmt.Sprintf("Received: %s", bytesize.New(float64(s.Received)).String()),
		fmt.Sprintf("Backlog: %d", s.Backlog),
		fmt.Sprintf("Surplus: %d", s.Surplus),
	}
	return strings.Join(lines, "\n")
}
