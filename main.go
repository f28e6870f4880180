package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bibliosmart/bibliosmart/internal/config"
	"github.com/bibliosmart/bibliosmart/internal/entrypoint"
	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/scheduler"
	"github.com/bibliosmart/bibliosmart/internal/storage"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "export":
		cfg := config.NewConfig()
		if err := runExport(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runExport writes a one-off snapshot of the collections to the backup
// directory without starting the server.
func runExport(cfg *config.Config) error {
	db, err := storage.NewDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := library.NewStore(db)
	if err != nil {
		return err
	}

	path, err := scheduler.WriteSnapshot(store, cfg.Backup.Dir)
	if err != nil {
		return err
	}
	log.Printf("Exported collections to %s", path)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve   Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  export  Write a JSON snapshot of the collections and exit\n")
	fmt.Fprintf(os.Stderr, "\nUse environment variables for configuration (see internal/config).\n")
}
