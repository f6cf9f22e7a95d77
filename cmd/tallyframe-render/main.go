package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	tflog "github.com/tallyframe/tallyframe/lib/log"
	"github.com/tallyframe/tallyframe/lib/mixer"
)

func main() {
	fps := flag.Int("fps", 30, "frames per second of animation time")
	workers := flag.Int("workers", 0, "frames encoded in parallel, one per CPU when 0")
	out := flag.String("out", "frames", "output directory")
	verbose := flag.Bool("v", false, "log debug messages")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <document>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	tflog.Setup(level)

	doc, err := mixer.ReadDocument(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	n, err := mixer.RenderSequence(ctx, doc, *out, mixer.SequenceOptions{FPS: *fps, Workers: *workers})
	if err != nil {
		log.Fatalf("could not render %s: %s", flag.Arg(0), err)
	}
	slog.Info("rendered frames", slog.String("module", "render"), slog.Int("frames", n), slog.String("dir", *out))
}
