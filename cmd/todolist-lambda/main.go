// Command todolist-lambda serves the to-do list API behind an API Gateway HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bornholm/go-x/slogx"

	"github.com/jacentio/todolist/internal/config"
	"github.com/jacentio/todolist/internal/lambdaproxy"
	"github.com/jacentio/todolist/internal/setup"
)

func main() {
	ctx := context.Background()

	conf, err := config.Parse()
	if err != nil {
		slog.ErrorContext(ctx, "could not parse config", slogx.Error(err))
		os.Exit(1)
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.Level(conf.Logger.Level),
		}),
	})
	slog.SetDefault(logger)

	handler, err := setup.NewHTTPHandlerFromConfig(ctx, conf)
	if err != nil {
		logger.ErrorContext(ctx, "could not setup http handler", slogx.Error(err))
		os.Exit(1)
	}

	lambda.Start(lambdaproxy.NewHandler(handler, logger).HandleRequest)
}
