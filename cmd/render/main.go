package main

import (
	"context"
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"epaper/pkg/device/remote"
	"epaper/pkg/device/waveshare"
	"epaper/pkg/proto"
)

var serial = flag.String("serial", waveshare.DefaultPort, "serial name")
var listen = flag.String("listen", ":9123", "listen addr")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*proto.Serial, *http.Server) {
				return proto.NewSerial(*serial),
					&http.Server{Addr: *listen}
			},
			func() (*zap.Logger, error) {
				if *debug {
					return zap.NewDevelopment()
				}
				return zap.NewProduction()
			},
			func(s *proto.Serial, logger *zap.Logger, lifecycle fx.Lifecycle) (proto.Control, error) {
				dev, err := waveshare.New(s, logger)
				if err != nil {
					return nil, err
				}
				lifecycle.Append(fx.Hook{
					OnStop: func(context.Context) error { return dev.Close() },
				})
				return dev, nil
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
