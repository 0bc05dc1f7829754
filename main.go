package main

import (
	"fmt"
	"log"
)

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

func main() {
	if err := run(NewApp); err != nil {
		log.Fatal(err)
	}
}

// run builds the application with newApp then runs the library session.
func run(newApp func() (AppProvider, error)) error {
	app, err := newApp()
	if err != nil {
		return fmt.Errorf("application failed to initialize: %w", err)
	}
	if err = app.Run(); err != nil {
		return fmt.Errorf("application exited, check logs for more details: %w", err)
	}
	return nil
}
