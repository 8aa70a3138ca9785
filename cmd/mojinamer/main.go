package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"

	"mojinamer"
	"mojinamer/internal/config"
)

var (
	model       = flag.String("model", mojinamer.DefaultModel, "OpenAI model to use")
	dryRun      = flag.Bool("dry-run", false, "Show planned renames without changing files")
	llamaServer = flag.String("llama", "", "Address of a running llama server, typically http://localhost:8080; used instead of OpenAI")
	llamaSeed   = flag.Int("seed", 385480504, "Random seed to llama")
	timeout     = flag.Duration("timeout", 60*time.Second, "Per-image naming request timeout")
	quiet       = flag.Bool("quiet", false, "Disable the progress bar")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <directory>\n\nRename the images in <directory> using a vision model.\n\n", os.Args[0])
	flag.PrintDefaults()
}

func sighandler(ch chan os.Signal, cancel context.CancelFunc) {
	<-ch
	fmt.Fprintln(os.Stderr, "SIGINT received, stopping...")
	cancel()
	<-ch
	fmt.Fprintln(os.Stderr, "Exiting")
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	dir := flag.Arg(0)

	// A .env file is optional, ignore the error when there is none.
	_ = godotenv.Load()

	nio := mojinamer.InitOptions{
		Model:       *model,
		LlamaServer: *llamaServer,
		LlamaSeed:   *llamaSeed,
		HTTPClient: &http.Client{
			Timeout: *timeout,
		},
	}
	if *llamaServer == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("%v", err)
		}
		nio.APIKey = cfg.APIKey
	}

	n, err := mojinamer.Init(nio)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if !n.IsHealthy() {
		log.Fatalf("%s server is not responding", n.Name())
	}

	if !*dryRun {
		fmt.Println("Renames happen in place, no backups are made.")
	}

	sigch := make(chan os.Signal, 2)
	signal.Notify(sigch, os.Interrupt)

	ctx, cancel := context.WithCancel(context.Background())
	go sighandler(sigch, cancel)

	stats, err := mojinamer.Run(ctx, mojinamer.Options{
		Dir:       dir,
		Describer: n,
		DryRun:    *dryRun,
		Timeout:   *timeout,
		Progress:  !*quiet,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *dryRun {
		fmt.Printf("Dry run: %d of %d images would be renamed\n", stats.Renamed, stats.Total)
	}
}
