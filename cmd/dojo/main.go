// Dojo Genesis: project workflow MCP server
//
// Keeps per-project workflow state (phase, tracks, decisions, artifacts)
// for agent-driven development, exposed over MCP stdio so any AI coding
// tool can drive the /dojo command surface and the state tools.
//
// Usage:
//
//	dojo serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	dojoserver "github.com/dojo-genesis/dojo/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("dojo v%s\n", dojoserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, _, cleanup, err := dojoserver.New(basePath())
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

// basePath resolves the state directory: $DOJO_STATE_DIR when set,
// otherwise ~/.dojo/dojo-genesis.
func basePath() string {
	if dir := os.Getenv("DOJO_STATE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dojo", "dojo-genesis")
	}
	return filepath.Join(home, ".dojo", "dojo-genesis")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Dojo Genesis v%s — project workflow MCP server

Usage:
  dojo serve    Start the MCP server (stdio transport)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "dojo": {
        "command": "dojo",
        "args": ["serve"]
      }
    }
  }

State lives under ~/.dojo/dojo-genesis (override with DOJO_STATE_DIR).
`, dojoserver.Version)
}
