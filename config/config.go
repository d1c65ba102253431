package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Конфигурация для подключения к staging БД (исходной)
	StagingConfig DatabaseConfig

	// Конфигурация для подключения к БД хранилища (целевой)
	WarehouseConfig DatabaseConfig

	// Размер пакета при вставке строк в хранилище
	BatchSize int `envconfig:"ETL_BATCH_SIZE" default:"10000"`

	// Адрес HTTP-сервера для управления ETL
	HTTPAddr string `envconfig:"ETL_HTTP_ADDR" default:":8095"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `envconfig:"ETL_DETAILED_LOGGING" default:"true"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"3306"`
	User     string `envconfig:"USER" default:"root"`
	Password string `envconfig:"PASSWORD" default:""`
	DBName   string `envconfig:"DBNAME"`
}

// GetConfig возвращает конфигурацию ETL
// Значения берутся из переменных окружения, при их отсутствии действуют значения по умолчанию
func GetConfig() ETLConfig {
	var config ETLConfig

	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Ошибка при чтении конфигурации ETL: %v", err)
	}

	if err := envconfig.Process("STAGING", &config.StagingConfig); err != nil {
		log.Fatalf("Ошибка при чтении конфигурации staging БД: %v", err)
	}
	if config.StagingConfig.DBName == "" {
		config.StagingConfig.DBName = "retail_staging"
	}

	if err := envconfig.Process("WAREHOUSE", &config.WarehouseConfig); err != nil {
		log.Fatalf("Ошибка при чтении конфигурации БД хранилища: %v", err)
	}
	if config.WarehouseConfig.DBName == "" {
		config.WarehouseConfig.DBName = "retail_dwh"
	}

	return config
}
