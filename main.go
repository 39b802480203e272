package main

import (
	"os"

	"github.com/PoliTwit1984/bsky-reddit-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
