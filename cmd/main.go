package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"proxy-normalizer/app"
	"proxy-normalizer/internal/common"
)

func main() {
	env := os.Getenv("APP_ENV")

	logger, err := newLogger(env)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	application := app.NewApplication(
		common.WithLogger(logger),
		common.WithEnv(env),
	)

	if err := application.Start(context.Background()); err != nil {
		logger.Fatal("failed to start application", zap.Error(err))
	}

	// Wait for a signal or the end of a one-shot run
	sig := <-application.Wait()

	logger.Info("received shutdown signal",
		zap.String("signal", fmt.Sprint(sig.Signal)),
		zap.Int("exit_code", sig.ExitCode))

	// Stop with timeout
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := application.Stop(stopCtx); err != nil {
		logger.Fatal("failed to stop application gracefully", zap.Error(err))
	}

	logger.Sync()
	os.Exit(sig.ExitCode)
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
