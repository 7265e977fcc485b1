//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/primalpath/report-engine/internal/bootstrap"
	httpiface "github.com/primalpath/report-engine/internal/interface/http"
	"github.com/primalpath/report-engine/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		provideConfig,
		logger.New,
		provideReportConfig,
		provideCompletionClient,
		provideRepository,
		provideObjectStorage,
		provideHTMLCache,
		provideMailer,
		provideReportService,
		provideJobQueue,
		provideHandler,
		httpiface.NewRouter,
		provideApp,
	)
	return nil, nil
}
