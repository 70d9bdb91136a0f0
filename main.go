package main

import (
	"log"
	"net/http"
	"os"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	loadConfig(configPath)
	initDB(cfg.DBPath)
	startIngest()

	log.Printf("ContribHub running on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, newMux()))
}
