package main

import (
	"context"
	"os"
	"os/signal"
	"sizemic/internal/cli"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.NewResizeCommand().ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("could not resize file")
	}
}
