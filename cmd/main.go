package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pageObject/internal/browser"
	"pageObject/internal/cli"
	"pageObject/internal/config"
	"pageObject/internal/database"
	"pageObject/internal/logger"
	"pageObject/internal/migrations"
	"pageObject/internal/page"
	"pageObject/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logOpts []logger.Option
	if cfg.Logger.File != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.Logger.File))
	}
	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level, logOpts...)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var consoleOpts []cli.Option
	if cfg.Database.Enabled() {
		if err := migrations.Run(cfg, log); err != nil {
			log.Fatal("Ошибка миграций", zap.Error(err))
		}

		db, err := database.New(cfg, log)
		if err != nil {
			log.Fatal("Ошибка подключения к БД", zap.Error(err))
		}
		defer db.Close(log)

		repo := database.NewRunRepository(db.DB)
		consoleOpts = append(consoleOpts, cli.WithRuns(repo))

		srv := server.New(cfg, log.Logger, repo)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error("Сервер отчетов остановлен", zap.Error(err))
			}
		}()
	} else {
		log.Info("Журнал прогонов отключен: DB_HOST и DB_NAME не заданы")
	}

	br := browser.New(browser.Config{
		Engine:           browser.Engine(cfg.Browser.Engine),
		Headless:         cfg.Browser.Headless,
		UserDataDir:      cfg.Browser.UserDataDir,
		BrowsersPath:     cfg.Browser.BrowsersPath,
		Display:          cfg.Browser.Display,
		SettleAfterClick: cfg.Browser.SettleAfterClick,
		Timeout:          cfg.Browser.Timeout,
		NavigateTimeout:  cfg.Browser.NavigateTimeout,
		ActionTimeout:    cfg.Browser.ActionTimeout,
	}, log.Logger)

	if err := br.Launch(ctx); err != nil {
		log.Fatal("Ошибка запуска браузера", zap.Error(err))
	}
	defer func() {
		if err := br.Close(); err != nil {
			log.Warn("Ошибка закрытия браузера", zap.Error(err))
		}
	}()

	comp := page.New(br, page.Options{
		BaseURL:         cfg.Webapp.URL,
		ContextPath:     cfg.Webapp.Context,
		Logger:          log.Logger,
		PollInterval:    cfg.Waits.PollInterval,
		PageLoadTimeout: cfg.Waits.PageLoadTimeout,
		ImplicitTimeout: cfg.Waits.ImplicitTimeout,
	})

	console := cli.New(comp, log.Logger, consoleOpts...)
	console.Run(ctx)
}
