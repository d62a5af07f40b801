package main

import (
	"fmt"
	"log"
	"os"

	"github.com/skip2/go-qrcode"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"epaper/pkg/device/virtual"
	"epaper/pkg/device/waveshare"
	"epaper/pkg/display"
	"epaper/pkg/placement"
	"epaper/pkg/raster"
)

var boxX = flag.Int("x", 0, "box left")
var boxY = flag.Int("y", 200, "box top")
var boxSize = flag.Int("size", 600, "box side")
var recovery = flag.String("recovery", "medium", "error correction: low, medium, high, highest")
var preview = flag.String("preview", "", "write a png of the drawn code to this path")
var debug = flag.Bool("debug", false, "set debug")

var levels = map[string]qrcode.RecoveryLevel{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: qrdump [flags] CONTENT")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level, ok := levels[*recovery]
	if !ok {
		log.Fatalf("unknown recovery level %q", *recovery)
	}

	grid, err := raster.FromQR(flag.Arg(0), level)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(grid)

	box := placement.Box(*boxX, *boxY, *boxSize)
	p, err := placement.Fit(grid.Width(), grid.Height(), box)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%dx%d modules, x: %d y: %d scale: %d\n", grid.Width(), grid.Height(), p.X, p.Y, p.Scale)

	n := 0
	for r := range grid.Rects(p.Scale, p.X, p.Y, raster.Background) {
		fmt.Printf("%d %d %d %d\n", r.X1, r.Y1, r.X2, r.Y2)
		n++
	}
	fmt.Printf("%d rectangles\n", n)

	if *preview == "" {
		return
	}

	logger := zap.NewNop()
	if *debug {
		logger, _ = zap.NewDevelopment()
	}

	dev := virtual.Mock(logger, waveshare.Width, waveshare.Height)
	if _, err := display.New(dev, logger).DrawQR(grid, box); err != nil {
		log.Fatal(err)
	}
	if err := dev.Save(*preview); err != nil {
		log.Fatal(err)
	}
}
