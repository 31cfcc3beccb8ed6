// Command pixfilter applies one image filter to an image file.
//
//	pixfilter -filter gaussian -radius 2 -sigma 1.5 in.png out.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/soypat/pixfilter"
	"github.com/soypat/pixfilter/filters"
	"github.com/soypat/pixfilter/internal/imageio"
)

func main() {
	cfg := filters.DefaultConfig()
	name := flag.String("filter", "invert", "filter to apply: "+strings.Join(filters.Names(), ", "))
	debugMode := flag.Bool("debug", false, "enable debug mode with verbose logging")
	ref := flag.String("ref", "#ffffff", "reference color for the correction filter")
	exact := flag.Bool("exact", false, "use real valued gain in the correction filter")
	flag.IntVar(&cfg.Radius, "radius", cfg.Radius, "gaussian kernel radius")
	flag.Float64Var(&cfg.Sigma, "sigma", cfg.Sigma, "gaussian standard deviation")
	flag.Float64Var(&cfg.Amplitude, "amplitude", cfg.Amplitude, "wave amplitude in pixels")
	flag.Float64Var(&cfg.Period, "period", cfg.Period, "wave period in pixels")
	flag.IntVar(&cfg.Offset, "offset", cfg.Offset, "shift offset in pixels")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] input output\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := initLogger(*debugMode)
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	c, err := filters.ParseColor(*ref)
	if err != nil {
		logger.Fatal(err)
	}
	cfg.Reference = c
	if *exact {
		cfg.Mode = filters.CorrectionExact
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = run(ctx, logger, *name, cfg, flag.Arg(0), flag.Arg(1))
	if errors.Is(err, pixfilter.ErrAborted) {
		logger.Warn("cancelled, no output written")
		os.Exit(130)
	} else if err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, logger *logrus.Logger, name string, cfg filters.Config, in, out string) error {
	f, err := filters.New(name, cfg)
	if err != nil {
		return err
	}
	src, err := imageio.Load(in, logger)
	if err != nil {
		return err
	}
	log := logger.WithField("filter", name)
	last := -10
	progress := func(percent int) {
		if percent/10 != last/10 {
			log.WithField("percent", percent).Debug("progress")
		}
		last = percent
	}
	dst, err := f.Apply(src, progress, pixfilter.CancelledByContext(ctx))
	if err != nil {
		return err
	}
	log.Info("filter applied")
	return imageio.Save(out, dst, logger)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
		pixfilter.SetLogger(logger)
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger
}
