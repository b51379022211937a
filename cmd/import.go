package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"droscher.com/BeerImporter/configs"
	"droscher.com/BeerImporter/pkg/importer"
	"droscher.com/BeerImporter/pkg/repository"
)

var ErrImportFailed = errors.New("import failed")

type ImportCmd struct {
	ConfigFile string `default:".BeerImporter.toml" help:"Path to config file"                   short:"c"`
	Dir        string `help:"Directory of JSON documents, overrides the configured one" short:"d" type:"path"`
}

func (i *ImportCmd) Run(cliContext *Context) error {
	logger := newLogger(cliContext.Debug).With(zap.Stringer("run_id", uuid.New()))
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(i.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	if i.Dir != "" {
		conf.Import.Dir = i.Dir
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := importer.New(conf.Import, afero.NewOsFs(), repo, logger).Run(ctx)
	if err != nil {
		logger.Error("import aborted", zap.Error(err))

		return err
	}

	for _, file := range report.Files {
		if file.Err != nil {
			logger.Warn("file not imported", zap.String("file", file.Name), zap.Error(file.Err))
		}
	}

	if failed := report.Failed(); failed > 0 {
		logger.Error("import finished with failures", zap.Int("failed", failed), zap.Int("files", len(report.Files)))

		return ErrImportFailed
	}

	return nil
}

func newLogger(debug bool) *zap.Logger {
	logConfig := zap.NewProductionConfig()

	if debug {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.DisableStacktrace = true
	}

	logger, _ := logConfig.Build()

	return logger
}
