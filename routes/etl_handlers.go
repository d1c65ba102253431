// routes/etl_handlers.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// ETLHandler обрабатывает HTTP-запросы управления ETL
type ETLHandler struct {
	service ETLService
	logger  *utils.ETLLogger
}

// NewETLHandler создает новый экземпляр ETLHandler
func NewETLHandler(service ETLService, logger *utils.ETLLogger) *ETLHandler {
	return &ETLHandler{
		service: service,
		logger:  logger,
	}
}

// RefreshResponse структура ответа API для запуска обновления
type RefreshResponse struct {
	Status string `json:"status"`
	Layer  string `json:"layer,omitempty"`
}

// ErrorResponse структура ответа API при ошибке
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
	Table string `json:"table,omitempty"`
	Code  string `json:"code,omitempty"`
}

// RefreshConformed обрабатывает запрос на обновление очищенного слоя
func (h *ETLHandler) RefreshConformed(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, models.LayerConformed, h.service.RefreshConformedLayer)
}

// RefreshDimensional обрабатывает запрос на обновление звёздной схемы
func (h *ETLHandler) RefreshDimensional(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, models.LayerDimensional, h.service.RefreshDimensionalLayer)
}

// RunFull обрабатывает запрос на полный ETL процесс
func (h *ETLHandler) RunFull(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, "full", h.service.ExecuteETL)
}

// GetStatus обрабатывает запрос состояния ETL
func (h *ETLHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status()
	if err != nil {
		h.logger.Error("Ошибка при получении состояния ETL: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// GetRuns обрабатывает запрос журнала запусков
// Параметр days задает глубину выборки в днях (по умолчанию 7)
func (h *ETLHandler) GetRuns(w http.ResponseWriter, r *http.Request) {
	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "параметр days должен быть положительным числом"})
			return
		}
		days = parsed
	}

	runs, err := h.service.RunStats(days)
	if err != nil {
		h.logger.Error("Ошибка при получении журнала запусков: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// runOperation запускает операцию ETL и отображает результат на HTTP-статус
func (h *ETLHandler) runOperation(w http.ResponseWriter, layer string, operation func() error) {
	if err := operation(); err != nil {
		h.logger.Error("Ошибка при обновлении слоя %s: %v", layer, err)

		// Параллельный запуск и нарушенное предусловие считаются конфликтом, а не сбоем
		if errors.Is(err, models.ErrRunInProgress) {
			writeError(w, http.StatusConflict, err)
			return
		}
		var etlErr *models.ETLError
		if errors.As(err, &etlErr) && etlErr.Code == models.ErrCodePreconditionFailed {
			writeError(w, http.StatusConflict, err)
			return
		}

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{Status: "success", Layer: layer})
}

// writeJSON отправляет ответ в формате JSON
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError отправляет структурированную ошибку в формате JSON
func writeError(w http.ResponseWriter, status int, err error) {
	response := ErrorResponse{Error: err.Error()}

	var etlErr *models.ETLError
	if errors.As(err, &etlErr) {
		response.Stage = etlErr.Stage
		response.Table = etlErr.Table
		response.Code = etlErr.Code
	}

	writeJSON(w, status, response)
}
