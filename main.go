package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Radaos/griddle/internal/app"
	"github.com/Radaos/griddle/internal/grid/tui"
)

func main() {
	// "griddle edit <file.csv>" opens the terminal grid editor on a local
	// file instead of starting the HTTP server.
	if len(os.Args) > 1 && os.Args[1] == "edit" {
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: griddle edit <file.csv>")
			os.Exit(2)
		}
		if err := tui.EditFile(os.Args[2]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	application.Stop(ctx)       // Stop the application gracefully
}
