package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/ctxlog"
	"github.com/vk/modelexport/internal/export"
	"github.com/vk/modelexport/internal/tablegen"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Each App gets its own
// logger writing to outW.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Run loads the model and exports it.
func (a *App) Run(ctx context.Context) (*export.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	a.logger.Debug("Model loaded.", "name", model.Name, "type", model.Type.String())

	format, err := tablegen.ParseFormat(a.config.Format)
	if err != nil {
		return nil, err
	}
	session := export.NewSession(model, export.Options{
		OutDir:  a.config.OutDir,
		Format:  format,
		Package: a.config.Package,
		Module:  a.config.Module,
	})
	res, err := session.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	a.logger.Info("Model exported.", "model", model.Name, "out_dir", a.config.OutDir, "files", res.Files)
	return res, nil
}
