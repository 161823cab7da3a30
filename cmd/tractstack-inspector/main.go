package main

import (
	"log"
	"os"

	"github.com/AtRiskMedia/tractstack-inspector/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("tractstack-inspector: %v", err)
		os.Exit(1)
	}
}
