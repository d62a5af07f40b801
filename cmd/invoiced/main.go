package main

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"epaper/pkg/catalog"
	"epaper/pkg/device/remote"
	"epaper/pkg/device/virtual"
	"epaper/pkg/device/waveshare"
	"epaper/pkg/display"
	"epaper/pkg/proto"
)

var serial = flag.String("serial", waveshare.DefaultPort, "serial name, remote addr or \"virtual\"")
var baud = flag.Uint32("baud", waveshare.DefaultBaudRate, "switch the panel to this baud rate after setup")
var catalogFile = flag.String("catalog", "", "catalog yaml file, built in sodas when empty")
var catalogURL = flag.String("catalog-url", "", "fetch the catalog from this url")
var cacheDir = flag.String("cache-dir", "", "dir keeping fetched catalogs and previews")
var interval = flag.Duration("interval", 30*time.Second, "draw interval")
var threshold = flag.Int("threshold", 600, "response backlog that forces a drain")
var debug = flag.Bool("debug", false, "set debug")
var tgToken = flag.String("tg-token", "", "telegram bot token")

func main() {
	flag.Parse()

	fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Provide(
			newLogger,
			newDevice,
			newCatalog,
			func() *catalog.Params { return catalog.NewParams(*interval) },
			func() *catalog.History { return catalog.NewHistory(10) },
			func(dev proto.Control, logger *zap.Logger) *display.Display {
				return display.New(dev, logger.Named("display"))
			},
			func(c *catalog.Catalog, d *display.Display, p *catalog.Params, h *catalog.History, logger *zap.Logger) *catalog.Cycler {
				return catalog.NewCycler(c, d, p, h, logger)
			},
		),
		fx.Invoke(run),
	).Run()
}

func newLogger() (*zap.Logger, error) {
	if *debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newDevice(logger *zap.Logger, lifecycle fx.Lifecycle) (proto.Control, error) {
	switch {
	case *serial == "virtual":
		return virtual.Mock(logger.Named("virtual"), waveshare.Width, waveshare.Height), nil
	case strings.Contains(*serial, ":"):
		c, err := remote.New(*serial, logger)
		if err != nil {
			return nil, err
		}
		lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error { return c.Close() },
		})
		return c, nil
	}

	dev, err := waveshare.New(proto.NewSerial(*serial), logger.Named("waveshare"), waveshare.WithThreshold(*threshold))
	if err != nil {
		return nil, err
	}
	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := dev.Sleep(); err != nil {
				logger.With(zap.Error(err)).Info("sleep failed")
			}
			return dev.Close()
		},
	})
	return dev, nil
}

func newCatalog(logger *zap.Logger) (*catalog.Catalog, catalog.Reloader, error) {
	var reload catalog.Reloader

	switch {
	case *catalogURL != "":
		f, err := fetcher(logger)
		if err != nil {
			return nil, nil, err
		}
		reload = func() (*catalog.Catalog, error) { return f.Fetch(*catalogURL) }
	case *catalogFile != "":
		reload = func() (*catalog.Catalog, error) { return catalog.Load(afero.NewOsFs(), *catalogFile) }
	default:
		return catalog.Default(), nil, nil
	}

	c, err := reload()
	if err != nil {
		return nil, nil, err
	}
	return c, reload, nil
}

func fetcher(logger *zap.Logger) (*catalog.Fetcher, error) {
	if *cacheDir == "" {
		return catalog.NewFetcher(nil, logger), nil
	}
	fs, err := catalog.NewFs(*cacheDir)
	if err != nil {
		return nil, err
	}
	return catalog.NewFetcher(fs, logger), nil
}

func run(
	dev proto.Control,
	d *display.Display,
	cycler *catalog.Cycler,
	params *catalog.Params,
	h *catalog.History,
	reload catalog.Reloader,
	logger *zap.Logger,
	lifecycle fx.Lifecycle,
) error {
	var bot *catalog.Bot
	if *tgToken != "" {
		var err error
		bot, err = catalog.NewBot(*tgToken, dev, cycler, params, h, reload)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})

	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(exited)

				if err := d.Setup(); err != nil {
					logger.With(zap.Error(err)).Error("setup failed")
					return
				}

				if e, ok := dev.(*waveshare.EPaper); ok && *baud != waveshare.DefaultBaudRate {
					if err := e.SetBaudrate(*baud); err != nil {
						logger.With(zap.Error(err)).Error("switch baud rate failed")
						return
					}
				}

				if bot != nil {
					bot.Start()
				}

				cycler.Run(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-exited
			if bot != nil {
				bot.Stop()
			}
			logger.With(zap.Any("stats", dev.Stats())).Info("exited")
			return nil
		},
	})

	return nil
}
