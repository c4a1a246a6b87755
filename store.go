package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS block_counts (
	world TEXT NOT NULL,
	x INTEGER NOT NULL,
	z INTEGER NOT NULL,
	name TEXT NOT NULL,
	count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS scan_totals (
	world TEXT NOT NULL,
	category TEXT NOT NULL,
	total INTEGER NOT NULL
);
`

// saveReport writes a finished report into a sqlite database, replacing any
// prior rows for the same world, all in one transaction.
func saveReport(dbPath, world string, r *Report) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return errors.Wrapf(err, "opening %s", dbPath)
	}
	defer db.Close()

	if _, err := db.Exec(storeSchema); err != nil {
		return errors.Wrap(err, "creating tables")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM block_counts WHERE world = ?",
		"DELETE FROM scan_totals WHERE world = ?",
	} {
		if _, err := tx.Exec(stmt, world); err != nil {
			return errors.Wrap(err, "clearing prior scan")
		}
	}

	ins, err := tx.Prepare("INSERT INTO block_counts (world, x, z, name, count) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer ins.Close()

	var insErr error
	r.each(func(e *entry) {
		e.counts.Each(func(name string, n int) {
			if insErr != nil {
				return
			}
			_, insErr = ins.Exec(world, e.cx*16, e.cz*16, name, n)
		})
	})
	if insErr != nil {
		return errors.Wrap(insErr, "inserting counts")
	}

	t := r.Totals()
	for _, row := range []struct {
		category string
		total    int
	}{
		{"chest", t.Chest},
		{"obsidian", t.Obsidian},
		{"rf", t.RF},
	} {
		if _, err := tx.Exec("INSERT INTO scan_totals (world, category, total) VALUES (?, ?, ?)",
			world, row.category, row.total); err != nil {
			return errors.Wrap(err, "inserting totals")
		}
	}

	return errors.Wrap(tx.Commit(), "committing")
}
