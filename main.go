package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chenson2018/website/config"
	"github.com/chenson2018/website/router"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

func main() {
	config.InitConfig()

	config.MigrateDB()

	r := router.InitRouter()
	srv := &http.Server{
		Addr:              config.AppConfig.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("address", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", sig).Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithField("error", err).Error("http server shutdown failed")
	}

	if err := config.CloseRedis(); err != nil {
		log.WithField("error", err).Error("redis close failed")
	}
	if err := config.CloseDB(); err != nil {
		log.WithField("error", err).Error("database close failed")
	}
	log.Info("Server exiting")
}
