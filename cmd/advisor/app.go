package main

import (
	"fmt"
	"os"
	"path/filepath"

	"portfolioAdvisor/internal/storage"
)

// openStore opens the sqlite database at path and ensures the schema.
// The caller must invoke the returned closer.
func openStore(path string) (*storage.Store, func(), error) {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := storage.OpenSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := storage.InitSchema(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init schema: %w", err)
	}
	return storage.NewStore(db), func() { db.Close() }, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}
