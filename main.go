package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/askdb/askdb/cmd"
	"github.com/askdb/askdb/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var structured *errors.Error
		if stderrors.As(err, &structured) {
			for _, suggestion := range structured.Suggestions {
				fmt.Fprintf(os.Stderr, "  hint: %s\n", suggestion)
			}
		}

		os.Exit(1)
	}
}
