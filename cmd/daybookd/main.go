package main

import (
	"os"

	"github.com/daybook-app/daybook/daybookservice"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := daybookservice.Run(); err != nil {
		log.Error().Err(err).Msg("daybookd exited with error")
		os.Exit(1)
	}
}
