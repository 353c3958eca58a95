package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v2"

	"thyrocast/db"
	thttp "thyrocast/http"
	"thyrocast/logger"
	"thyrocast/ml"
	"thyrocast/patient"
	"thyrocast/predict"
	"thyrocast/session"
)

type Config struct {
	Dataset struct {
		Path string `yaml:"path"`
	} `yaml:"dataset"`
	Model struct {
		Type string `yaml:"type"`
		Path string `yaml:"path"`
	} `yaml:"model"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Http struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"http"`
	Log struct {
		Level string `yaml:"level"`
		Path  string `yaml:"path"`
	} `yaml:"log"`
	Predict struct {
		BorderlineLow  float64 `yaml:"borderline_low"`
		BorderlineHigh float64 `yaml:"borderline_high"`
		HighRiskFloor  float64 `yaml:"high_risk_floor"`
		CacheSize      int     `yaml:"cache_size"`
	} `yaml:"predict"`
}

func main() {
	// 1. Load config
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(config.Log.Path, config.Log.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Initialize database and load the reference dataset
	if err := db.InitDB(config.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	rows, err := patient.LoadDataset(config.Dataset.Path)
	if err != nil {
		log.Fatalf("Failed to load reference dataset: %v", err)
	}
	if err := db.LoadPatients(rows); err != nil {
		log.Fatalf("Failed to load reference patients: %v", err)
	}
	logger.Infof("Loaded %d reference patients from %s", len(rows), config.Dataset.Path)

	// 3. Load the trained classifier
	model, err := ml.LoadModel(config.Model.Type, config.Model.Path)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	logger.Infof("Loaded %s model from %s", config.Model.Type, config.Model.Path)

	// 4. Wire the prediction services
	thresholds := predict.DefaultThresholds()
	if config.Predict.BorderlineHigh > 0 {
		thresholds.BorderlineLow = config.Predict.BorderlineLow
		thresholds.BorderlineHigh = config.Predict.BorderlineHigh
		thresholds.HighRiskFloor = config.Predict.HighRiskFloor
	}
	invoker, err := predict.NewInvoker(model, thresholds, config.Predict.CacheSize)
	if err != nil {
		log.Fatalf("Failed to create invoker: %v", err)
	}

	hub := thttp.NewHub()
	go hub.Run()

	thttp.SetPredictor(invoker)
	thttp.SetHistory(session.NewHistory())
	thttp.SetHub(hub)

	// 5. Start HTTP server
	serverConfig := thttp.DefaultServerConfig()
	if config.Http.Host != "" {
		serverConfig.Host = config.Http.Host
	}
	if config.Http.Port != 0 {
		serverConfig.Port = config.Http.Port
	}
	server := thttp.NewServer(serverConfig)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()
	logger.Infof("Form available at http://%s", server.Addr())

	// 6. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	hub.Stop()
	if err := server.Stop(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
