package main

import (
	"net/http"
	"os"
	osSignal "os/signal"
	"slices"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/field-console/internal/application"
	"github.com/eugenenazirov/field-console/internal/config"
)

func TestShutdownStopsServingOnSignal(t *testing.T) {
	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})

	var registered []os.Signal
	signalNotify = func(ch chan<- os.Signal, sig ...os.Signal) {
		registered = sig
		go func() {
			ch <- syscall.SIGTERM
		}()
	}

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	cfg := config.Config{
		Port:                "127.0.0.1:0",
		StaticDir:           t.TempDir(),
		ShutdownGracePeriod: time.Second,
		ReadHeaderTimeout:   time.Second,
		WriteTimeout:        time.Second,
		IdleTimeout:         time.Second,
		LogLevel:            "info",
	}
	app, err := application.New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := app.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	called := make(chan struct{}, 1)
	app.Server().RegisterOnShutdown(func() {
		called <- struct{}{}
	})

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatalf("expected server shutdown callback to execute")
	}

	if !slices.Contains(registered, os.Signal(syscall.SIGTERM)) || !slices.Contains(registered, os.Signal(syscall.SIGINT)) {
		t.Fatalf("expected SIGINT and SIGTERM to be registered, got %v", registered)
	}
	if logs.FilterMessage("shutting down server").Len() != 1 {
		t.Fatalf("expected shutdown to be logged, got %v", logs.All())
	}
	if logs.FilterMessage("graceful shutdown failed").Len() != 0 {
		t.Fatalf("expected graceful shutdown to succeed")
	}

	client := &http.Client{Timeout: 200 * time.Millisecond}
	if resp, err := client.Get("http://" + app.Addr() + "/config.json"); err == nil {
		_ = resp.Body.Close()
		t.Fatalf("expected server to stop accepting connections")
	}
}
