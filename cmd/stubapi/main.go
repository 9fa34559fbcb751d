// Command stubapi serves the ResearchConnect REST contract from memory.
// It backs local rcctl sessions and contract tests.
package main

import (
	"flag"
	"os"

	"github.com/yigit/researchconnect/internal/config"
	"github.com/yigit/researchconnect/internal/pkg/logger"
	"github.com/yigit/researchconnect/internal/server"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
