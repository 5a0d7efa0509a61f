package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lgznml/WorkoutTracker/internal/config"
	"github.com/lgznml/WorkoutTracker/internal/db"
	"github.com/lgznml/WorkoutTracker/internal/sheetstore"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/metrics"
)

// mirrors the database content to the legacy google spreadsheet layout

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	credentialsFile := flag.String(
		"sheets-creds",
		"./sheets-service-account.json",
		"google sheets service account credentials json",
	)
	logsPath := flag.String("logs-path", "/var/log/workout-tracker/sheets-backup.log", "logs file path (empty for stdout)")
	flag.Parse()

	loggingSetup(*logsPath)

	log.Println("starting sheets backup ...")

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	if cfg.SpreadsheetID == "" {
		log.Fatalln("spreadsheet id not set in config")
	}

	credentialsJSON, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: cfg.PostgresHost,
		DBPort: cfg.PostgresPort,
		DBName: cfg.PostgresDBName,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	spreadsheet, err := sheetstore.NewGoogleSpreadsheet(ctx, cfg.SpreadsheetID, credentialsJSON)
	if err != nil {
		log.Fatalf("new google spreadsheet: %s", err)
	}

	metricsManager := metrics.NewManager("workouttracker", "sheets_backup", prometheus.NewRegistry())
	mirror := sheetstore.NewMirror(dbPool, spreadsheet, metricsManager)
	if err := mirror.Backup(ctx); err != nil {
		log.Fatalf("backup failed: %s", err)
	}

	log.Println("backup done!")
}

func loggingSetup(logFileName string) {
	if logFileName == "" {
		log.SetOutput(os.Stdout)
		return
	}

	if !strings.HasSuffix(logFileName, ".log") {
		logFileName += ".log"
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:  logFileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // false -> use UTC
		Compress:  true,
	})
}
