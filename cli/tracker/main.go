package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daniil11ru/trail/cli/tracker/api"
	"github.com/daniil11ru/trail/cli/tracker/config"
	"github.com/daniil11ru/trail/cli/tracker/domain"
	repo "github.com/daniil11ru/trail/cli/tracker/repository"
	"github.com/daniil11ru/trail/cli/tracker/source"
	"github.com/daniil11ru/trail/cli/tracker/storage"
	"github.com/daniil11ru/trail/cli/tracker/util"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	configFilePath := ""
	flag.StringVar(&configFilePath, "c", "", "")
	flag.Parse()
	config, err := getConfig(configFilePath)
	if err != nil {
		log.Fatalf("Не удалось получить конфиг: %v", err)
		return
	}

	configureLogging(config)

	applyMigrations(config)

	primarySource, err := source.NewDefaultPrimary(config.GetStoreDSN())
	if err != nil {
		log.Fatalf("Не удалось инициализировать источник данных: %v", err)
		return
	}

	primaryRepository := repo.Primary{Source: primarySource}

	apiKeyRegistry := &domain.ApiKeyRegistry{
		Repository:            &primaryRepository,
		RefreshCronExpression: config.ApiKeyRefreshCronExpression,
	}
	if err := apiKeyRegistry.Initialize(context.Background()); err != nil {
		log.Fatalf("Не удалось инициализировать реестр ключей API: %v", err)
		return
	}
	defer apiKeyRegistry.Shutdown()

	var exporter domain.Exporter
	if len(config.Exports) > 0 {
		exportRepository := storage.NewRepository()
		if err := exportRepository.LoadStorages(config.Exports); err != nil {
			log.Fatalf("Не удалось загрузить внешние хранилища: %v", err)
			return
		}
		defer exportRepository.Close()

		asyncRepository := storage.NewAsyncRepository(exportRepository, config.ExportBuffer, config.ExportWorkers)
		defer asyncRepository.Close()
		exporter = asyncRepository

		log.Infof("Загружено внешних хранилищ: %d", len(config.Exports))
	}

	updateLocation := &domain.UpdateLocation{
		PrimaryRepository: primaryRepository,
		Exporter:          exporter,
	}
	queryLocation := &domain.QueryLocation{PrimaryRepository: primaryRepository}
	resolveCredential := &domain.ResolveCredential{Registry: apiKeyRegistry}

	handler := api.NewHandler(updateLocation, queryLocation)
	controller, err := api.NewController(handler, resolveCredential)
	if err != nil {
		log.Fatalf("Не удалось создать контроллер API: %v", err)
		return
	}

	log.Infof("Запуск API на порту %d", config.ApiPort)
	if err := controller.Run(config.ApiPort); err != nil {
		log.Fatal(err)
	}
}

func getConfig(configFilePath string) (config.Settings, error) {
	var c config.Settings
	var err error

	if configFilePath == "" {
		return c, &util.ErrorString{S: "не задан путь до конфига"}
	}

	c, err = config.New(configFilePath)
	if err != nil {
		return c, fmt.Errorf("ошибка парсинга конфига: %v", err)
	}

	return c, nil
}

func configureLogging(config config.Settings) {
	log.SetLevel(config.GetLogLevel())

	consoleFmt := &log.TextFormatter{ForceColors: true, FullTimestamp: false}
	log.SetFormatter(consoleFmt)
	log.SetOutput(os.Stdout)

	if config.LogFilePath != "" {
		logDir := filepath.Dir(config.LogFilePath)
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
				log.Fatalf("Не получилось создать директорию для логов: %v", err)
			}
		}

		lumberjackLogger := &lumberjack.Logger{
			Filename:   config.LogFilePath,
			MaxSize:    100,
			MaxBackups: 366,
			MaxAge:     config.LogMaxAgeDays,
			Compress:   true,
		}

		fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
		hook := lfshook.NewHook(lfshook.WriterMap{
			log.PanicLevel: lumberjackLogger,
			log.FatalLevel: lumberjackLogger,
			log.ErrorLevel: lumberjackLogger,
			log.WarnLevel:  lumberjackLogger,
			log.InfoLevel:  lumberjackLogger,
			log.DebugLevel: lumberjackLogger,
			log.TraceLevel: lumberjackLogger,
		}, fileFmt)

		log.AddHook(hook)
	}
}

func applyMigrations(config config.Settings) {
	m, err := migrate.New(config.MigrationsPath, config.GetMigrateDatabaseURL())
	if err != nil {
		log.Fatalf("Ошибка инициализации миграций: %v", err)
		return
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("Нет новых миграций для применения")
			return
		}
		log.Fatalf("Ошибка применения миграций: %v", err)
		return
	}

	log.Info("Миграции успешно применены")
}
