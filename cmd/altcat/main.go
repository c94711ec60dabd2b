package main

import (
	"os"

	cmd "github.com/MrSnakeDoc/altcat/internal"
	"github.com/MrSnakeDoc/altcat/internal/middleware"
)

func main() {
	if err := cmd.Execute(); err != nil {
		middleware.Report(err)
		os.Exit(1)
	}
}
