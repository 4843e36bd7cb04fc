package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/openballot/openballot/cliparse"
	"github.com/openballot/openballot/mailer"
	"github.com/openballot/openballot/polls"
	"github.com/openballot/openballot/router"
	"github.com/openballot/openballot/store"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the poll store; the schema is created on first use
	st, err := store.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("store open failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Pick a mailer
	var mail mailer.Mailer
	if cfg.SkipEmails {
		mail = &mailer.LogMailer{}
	} else {
		mail = mailer.NewPostmark(cfg.PostmarkToken, cfg.FromEmail, cfg.FromName)
	}

	mgr := polls.NewManager(st, mail, cfg)

	// Create router
	mux := router.NewRouter(mgr, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
