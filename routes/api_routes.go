// routes/api_routes.go
package routes

import (
	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
	"github.com/gorilla/mux"
)

// ETLService описывает операции ETL, доступные через HTTP API
type ETLService interface {
	// RefreshConformedLayer обновляет очищенный слой хранилища
	RefreshConformedLayer() error

	// RefreshDimensionalLayer обновляет звёздную схему
	RefreshDimensionalLayer() error

	// ExecuteETL выполняет оба обновления по порядку
	ExecuteETL() error

	// Status возвращает состояние ETL по данным журнала
	Status() (*models.ETLStateMonitor, error)

	// RunStats возвращает записи журнала за указанный период
	RunStats(days int) ([]models.ETLRunLog, error)
}

// SetupRoutes настраивает маршруты API управления ETL
func SetupRoutes(router *mux.Router, service ETLService, logger *utils.ETLLogger) {
	handler := NewETLHandler(service, logger)

	// Запуск обновлений
	router.HandleFunc("/api/etl/refresh-conformed", handler.RefreshConformed).Methods("POST")
	router.HandleFunc("/api/etl/refresh-dimensional", handler.RefreshDimensional).Methods("POST")
	router.HandleFunc("/api/etl/run", handler.RunFull).Methods("POST")

	// Состояние и журнал запусков
	router.HandleFunc("/api/etl/status", handler.GetStatus).Methods("GET")
	router.HandleFunc("/api/etl/runs", handler.GetRuns).Methods("GET")
}
