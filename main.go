package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/LilVoxy/retail_dwh/routes"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// RunOnce выполняет полный ETL процесс один раз и завершается
func RunOnce() {
	runner, err := NewETLRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.ExecuteETL(); err != nil {
		log.Fatalf("Ошибка при выполнении ETL: %v", err)
	}
}

// RunConformed выполняет только обновление очищенного слоя
func RunConformed() {
	runner, err := NewETLRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.RefreshConformedLayer(); err != nil {
		log.Fatalf("Ошибка при обновлении очищенного слоя: %v", err)
	}
}

// RunDimensional выполняет только сборку звёздной схемы
func RunDimensional() {
	runner, err := NewETLRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.RefreshDimensionalLayer(); err != nil {
		log.Fatalf("Ошибка при обновлении звёздной схемы: %v", err)
	}
}

// RunServer запускает HTTP-сервер управления ETL
func RunServer() {
	runner, err := NewETLRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	router := mux.NewRouter()
	routes.SetupRoutes(router, runner, runner.logger)

	addr := runner.config.HTTPAddr
	log.Printf("HTTP-сервер управления ETL запущен на %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Ошибка HTTP-сервера: %v", err)
	}
}

func main() {
	// Загружаем переменные окружения из .env, если файл присутствует
	if err := godotenv.Load(); err == nil {
		log.Println("Конфигурация дополнена из файла .env")
	}

	// Параметры командной строки
	modePtr := flag.String("mode", "once", "Режим работы: once, conformed, dimensional или serve")
	flag.Parse()

	log.Println("Запуск ETL Runner в режиме:", *modePtr)

	switch *modePtr {
	case "once":
		RunOnce()
	case "conformed":
		RunConformed()
	case "dimensional":
		RunDimensional()
	case "serve":
		RunServer()
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: once, conformed, dimensional, serve")
		os.Exit(1)
	}

	log.Println("ETL Runner завершил работу")
}
