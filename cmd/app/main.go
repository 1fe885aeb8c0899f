package main

import (
	"flag"
	"log"
	"os"

	"Jyotisa/internal/di"
	"Jyotisa/pkg/config"
)

func main() {
	defaultPath := "configs/config.yaml"
	if p := os.Getenv("JYOTISA_CONFIG"); p != "" {
		defaultPath = p
	}
	configPath := flag.String("config", defaultPath, "config file path, empty for built-in defaults")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
