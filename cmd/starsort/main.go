package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// An interrupt is already visible on the terminal; stay quiet.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "starsort:", err)
		}
		os.Exit(1)
	}
}
