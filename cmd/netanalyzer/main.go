// Command netanalyzer loads edge-list datasets into memory and answers
// structural queries about them: degree and clustering statistics, shortest
// paths, Louvain communities and influence diffusion. The serve subcommand
// exposes the same queries over HTTP and GraphQL.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
