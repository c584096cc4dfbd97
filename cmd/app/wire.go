//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/tennis-playability/internal/bootstrap"
	"github.com/yanqian/tennis-playability/internal/domain/playability"
	"github.com/yanqian/tennis-playability/internal/infra/config"
	"github.com/yanqian/tennis-playability/internal/infra/inference"
	httpiface "github.com/yanqian/tennis-playability/internal/interface/http"
	"github.com/yanqian/tennis-playability/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideInferenceClient,
		provideSelectionStore,
		provideSessionConfig,
		playability.NewService,
		wire.Bind(new(playability.Predictor), new(*inference.Client)),
		httpiface.NewSessionManager,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
