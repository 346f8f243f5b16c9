package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/pcrcalc/internal/cli"
	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	// Optional .env; existing environment wins for the CLI
	_ = godotenv.Load()

	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
