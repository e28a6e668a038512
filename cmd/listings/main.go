package main

import (
	"fmt"
	"os"

	"github.com/Yachtguy502/Analyze-Active-Listings/cmd/listings/commands"
	apierrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, apierrors.UserMessage(err))
		os.Exit(1)
	}
}
