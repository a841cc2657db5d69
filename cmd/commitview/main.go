package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
)

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := newRootCommand().Execute(); err != nil {
		logger.Fatalf("Error executing 'commitview': %s", err)
	}
}
