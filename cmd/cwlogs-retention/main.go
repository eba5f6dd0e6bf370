package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/diillson/cwlogs-retention-go/internal/adapter/driven/aws"
	"github.com/diillson/cwlogs-retention-go/internal/adapter/driven/config"
	"github.com/diillson/cwlogs-retention-go/internal/adapter/driven/export"
	"github.com/diillson/cwlogs-retention-go/internal/adapter/driving/cli"
	"github.com/diillson/cwlogs-retention-go/internal/application/usecase"
	"github.com/diillson/cwlogs-retention-go/pkg/console"
	"github.com/diillson/cwlogs-retention-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Os repositórios dependem do logger, que só existe depois do parse das flags
	app.SetUseCaseBuilder(func(log *zap.Logger) *usecase.RetentionUseCase {
		return usecase.NewRetentionUseCase(
			aws.NewAWSRepository(log),
			export.NewExportRepository(),
			config.NewConfigRepository(),
			console.NewConsole(),
			log,
		)
	})

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
