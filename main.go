package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonesrussell/north-cloud/email-classifier/cmd"
	"github.com/jonesrussell/north-cloud/email-classifier/cmd/classify"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(classify.ExitCode(err))
	}
}
