// Package main is the entry point for the passport CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ironicbadger/ktz-usa-stamps/internal/cli"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
