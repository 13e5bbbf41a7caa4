package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/programme-lv/contactform/conf"
	"github.com/programme-lv/contactform/contact"
	contacthttp "github.com/programme-lv/contactform/contact/http"
	"github.com/programme-lv/contactform/http"
	"github.com/programme-lv/contactform/logger"
	"github.com/programme-lv/contactform/s3bucket"
)

func main() {
	cfg, err := conf.Load(conf.LoadOptions{DotEnvFiles: []string{".env"}})
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.NewStderrLogger(cfg.Server.LogLevel, cfg.Server.LogJSON))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var contactSrvc *contact.ContactSrvc
	if cfg.WriterConfigured() {
		bucket, err := s3bucket.NewS3Bucket(ctx, cfg.Writer)
		if err != nil {
			slog.Error("failed to create S3 client", "error", err)
			os.Exit(1)
		}
		contactSrvc = contact.NewContactSrvc(bucket)
	} else {
		slog.Warn("storage is not configured, submissions will be refused",
			"missing", strings.Join(cfg.Writer.MissingForWrite(), ", "))
	}

	httpServer := http.NewHttpServer(cfg.Server, contacthttp.NewContactHttpHandler(contactSrvc))

	slog.Info("starting server", "address", cfg.Server.Address)
	err = httpServer.Start(ctx)
	if err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
