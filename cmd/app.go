// Package cmd implements the CLI application to reconcile equity
// compensation records and compute the resulting tax liability.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/ghoyle/equitytax"
	"github.com/ghoyle/equitytax/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "records")
	c.Register(&lotsCmd{}, "records")

	c.Register(&reconcileCmd{}, "reports")
	c.Register(&gapsCmd{}, "reports")
	c.Register(&taxCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var recordsFile = flag.String("file", "equity.jsonl", "Path to the equity records file (JSONL format)")
var dbPath = flag.String("db", "", "Path to a SQLite database. When set, it replaces the records file.")

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// openRepository opens the repository selected by the global flags: the
// SQLite store when -db is set, the JSONL records file otherwise. The
// returned persist function writes pending changes back (a no-op for the
// store, which writes through), and close releases the repository.
func openRepository() (repo equitytax.Repository, persist func() error, close func() error, err error) {
	if *dbPath != "" {
		s, err := store.Open(*dbPath, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, func() error { return nil }, s.Close, nil
	}

	mem, err := decodeRecordsFile(*recordsFile)
	if err != nil {
		return nil, nil, nil, err
	}
	persist = func() error { return encodeRecordsFile(*recordsFile, mem) }
	return mem, persist, func() error { return nil }, nil
}

// decodeRecordsFile loads the JSONL records file into memory, starting
// empty when the file does not exist yet.
func decodeRecordsFile(filename string) (*equitytax.MemoryRepository, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("file", filename).Msg("records file does not exist, starting empty")
		return equitytax.NewMemoryRepository(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open records file %q: %w", filename, err)
	}
	defer f.Close()

	repo, err := equitytax.DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("could not read records file %q: %w", filename, err)
	}
	return repo, nil
}

// encodeRecordsFile rewrites the JSONL records file from the repository in
// canonical order.
func encodeRecordsFile(filename string, repo *equitytax.MemoryRepository) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not write records file %q: %w", filename, err)
	}
	defer f.Close()

	if err := equitytax.EncodeRepository(f, repo); err != nil {
		return fmt.Errorf("could not encode records file %q: %w", filename, err)
	}
	return nil
}
