// Command librarian validates library API payloads against the schema kinds
// and prints the OpenAPI document of the API.
//
//	librarian kinds
//	librarian validate --kind book.create book.json more.yaml
//	librarian openapi --format yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalidPayloads) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
