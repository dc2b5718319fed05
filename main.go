package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lemslab/benchpipe/config"
	handlers "github.com/lemslab/benchpipe/handler"
	"github.com/lemslab/benchpipe/model"
	"github.com/lemslab/benchpipe/repository"
	"github.com/lemslab/benchpipe/router"
	"github.com/lemslab/benchpipe/service"
	"github.com/lemslab/benchpipe/service/db"
	"github.com/lemslab/benchpipe/stdin"
	"github.com/lemslab/benchpipe/watcher"
)

// initFlags initializes the command line flags
func initFlags() *model.CommandLineFlags {
	appFlags := &model.CommandLineFlags{}
	appFlags.Config = flag.String("config", "", "Optional YAML configuration file.")
	appFlags.Dir = flag.String("dir", "", "Directory to watch for AutoExportTrace_*.csv. Overrides config.")
	appFlags.DBPath = flag.String("dbpath", "", "DuckDB database file path. Overrides config.")
	appFlags.Interval = flag.Float64("interval", 0, "Polling interval in seconds. Overrides config.")
	appFlags.Backfill = flag.Bool("backfill", false, "Process existing file contents at startup.")
	appFlags.Host = flag.String("host", "", "Status API host. Overrides config.")
	appFlags.Port = flag.String("port", "", "Status API port. Overrides config.")
	appFlags.Stdin = flag.Bool("stdin", false, "Decode one CSV export from stdin, print measurements, exit.")
	flag.Parse()

	return appFlags
}

var appFlags *model.CommandLineFlags

func main() {
	appFlags = initFlags()
	config.InitConfig(*appFlags.Config)
	cfg := config.Config
	if *appFlags.Dir != "" {
		cfg.Watcher.Dir = *appFlags.Dir
	}
	if *appFlags.DBPath != "" {
		cfg.Sink.DBPath = *appFlags.DBPath
	}
	if *appFlags.Interval > 0 {
		cfg.Watcher.PollIntervalS = *appFlags.Interval
	}
	if *appFlags.Backfill {
		cfg.Watcher.Backfill = true
	}
	if *appFlags.Host != "" {
		cfg.Host = *appFlags.Host
	}
	if *appFlags.Port != "" {
		cfg.Port = *appFlags.Port
	}

	aliases, err := config.LoadAliases(cfg.Watcher.AliasFile)
	if err != nil {
		log.Fatalf("failed to load channel aliases: %v", err)
	}

	if *appFlags.Stdin {
		stdin.Init(aliases)
	}

	if cfg.Watcher.Dir == "" {
		log.Fatalf("no watch directory: pass -dir or set BENCHPIPE_WATCHER_DIR")
	}
	if _, err := os.Stat(cfg.Watcher.Dir); err != nil {
		log.Fatalf("cannot access watch directory %s: %v", cfg.Watcher.Dir, err)
	}

	dbConn, err := db.ConnectDuckDB(cfg.Sink.DBPath)
	if err != nil {
		log.Fatalf("failed to connect to DuckDB: %v", err)
	}
	defer dbConn.Close()
	if err := repository.CreateSamplesTables(dbConn); err != nil {
		log.Fatalf("failed to create tables: %v", err)
	}

	run := model.RunInfo{
		RunID:    uuid.New().String(),
		Started:  time.Now().UTC(),
		WatchDir: cfg.Watcher.Dir,
		Backfill: cfg.Watcher.Backfill,
	}
	if err := repository.InsertRun(dbConn, run); err != nil {
		log.Fatalf("failed to record run: %v", err)
	}

	interval := time.Duration(cfg.Watcher.PollIntervalS * float64(time.Second))
	w := watcher.NewWatcher(cfg.Watcher.Dir, cfg.Watcher.Backfill, interval, aliases)
	ingest := service.NewIngestService(dbConn, cfg.Sink.FlushRows,
		time.Duration(cfg.Sink.FlushTimeoutS)*time.Second)
	ingest.Run()

	h := &handlers.Handler{Run: run, Watcher: w, Ingest: ingest}
	h.RegisterRoutes()
	srv := &http.Server{Addr: cfg.Host + ":" + cfg.Port, Handler: router.NewRouter()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("benchpipe watching %s (backfill=%v), database %s, status API on %s:%s\n",
		cfg.Watcher.Dir, cfg.Watcher.Backfill, cfg.Sink.DBPath, cfg.Host, cfg.Port)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		// drains until the watcher closes the stream so records decoded
		// before the stop request still reach the sink
		for m := range w.Watch(ctx) {
			ingest.Store(m)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("benchpipe: %v", err)
	}
	ingest.Stop()
	log.Printf("benchpipe: inserted %d rows", ingest.Inserted())
}
