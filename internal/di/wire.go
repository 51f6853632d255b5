//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"TechAnalyst/pkg/config"
	"TechAnalyst/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideBarBackend,
		ProvideBytesCache,

		// Repositories
		ProvideReportCache,
		ProvideReportPublisher,

		// Engine and use cases
		ProvideEngine,
		ProvideAnalysisUseCase,
		ProvideBarsUseCase,
		ProvideStrategiesUseCase,

		// HTTP
		ProvideLimiter,
		ProvideHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
