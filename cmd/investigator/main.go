package main

import (
	"fmt"
	"os"

	"github.com/vanshika/fintrace/investigator/internal/config"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd(newApp(config.FromEnviron())).Execute(); err != nil {
		os.Exit(1)
	}
}
