// docket: markdown document and database MCP server
//
// Exposes guarded text edits on markdown documents, and folder-backed
// databases of markdown rows, to any MCP client over stdio.
//
// Usage:
//
//	docket serve                       # Start MCP server (stdio transport)
//	docket workspace add notes ~/notes # Register a workspace
//	docket workspace list
//	docket history --workspace notes   # Show recent edits
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
