// Package sqlitestore keeps datasets in a SQLite database file.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/kpmham/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	path  TEXT PRIMARY KEY,
	kind  INTEGER NOT NULL,
	shape TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS dataset_values (
	path TEXT NOT NULL,
	idx  INTEGER NOT NULL,
	ival INTEGER,
	re   REAL,
	im   REAL,
	PRIMARY KEY (path, idx)
);`

// Store is a dataset store backed by a single SQLite connection. It is not
// reentrant: load sequences through store.Acquire are serialized.
type Store struct {
	*sql.DB

	filename string
}

// Create creates a new database file. It fails if the file already exists.
func Create(filename string) (*Store, error) {
	_, err := os.Stat(filename)
	if err == nil {
		return nil, fmt.Errorf("file %s already exists", filename)
	}

	return open(filename)
}

// Open opens an existing database file.
func Open(filename string) (*Store, error) {
	_, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open store %s: %w", filename, err)
	}

	return open(filename)
}

// OpenWithDB wraps an already opened database.
func OpenWithDB(db *sql.DB) (*Store, error) {
	s := &Store{DB: db}

	_, err := s.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("cannot create schema: %w", err)
	}

	return s, nil
}

func open(filename string) (*Store, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	s, err := OpenWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	s.filename = filename

	return s, nil
}

// Filename returns the database file name, empty for OpenWithDB stores.
func (s *Store) Filename() string {
	return s.filename
}

// Reentrant returns false.
func (s *Store) Reentrant() bool {
	return false
}

// Info returns the kind and shape of a dataset.
func (s *Store) Info(path string) (store.Info, error) {
	var kind int
	var shape string

	err := s.QueryRow(
		"SELECT kind, shape FROM datasets WHERE path = ?", path,
	).Scan(&kind, &shape)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Info{}, fmt.Errorf("%w: %s", store.ErrNotFound, path)
	}

	if err != nil {
		return store.Info{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	dims, err := parseShape(shape)
	if err != nil {
		return store.Info{}, fmt.Errorf("%w: %s: %v", store.ErrShape, path, err)
	}

	return store.Info{Kind: store.Kind(kind), Shape: dims}, nil
}

// ReadInts reads an int dataset.
func (s *Store) ReadInts(path string) ([]int, error) {
	d, err := s.read(path)
	if err != nil {
		return nil, err
	}

	return d.AsInts(path)
}

// ReadFloats reads an int or float dataset.
func (s *Store) ReadFloats(path string) ([]float64, error) {
	d, err := s.read(path)
	if err != nil {
		return nil, err
	}

	return d.AsFloats(path)
}

// ReadComplex reads any dataset as complex values.
func (s *Store) ReadComplex(path string) ([]complex128, error) {
	d, err := s.read(path)
	if err != nil {
		return nil, err
	}

	return d.AsComplex(path)
}

func (s *Store) read(path string) (store.Dataset, error) {
	info, err := s.Info(path)
	if err != nil {
		return store.Dataset{}, err
	}

	rows, err := s.Query(
		"SELECT ival, re, im FROM dataset_values WHERE path = ? ORDER BY idx",
		path,
	)
	if err != nil {
		return store.Dataset{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer rows.Close()

	d := store.Dataset{Info: info}

	for rows.Next() {
		var ival sql.NullInt64
		var re, im sql.NullFloat64

		err = rows.Scan(&ival, &re, &im)
		if err != nil {
			return store.Dataset{}, fmt.Errorf("cannot read %s: %w", path, err)
		}

		switch info.Kind {
		case store.KindInt:
			d.Ints = append(d.Ints, int(ival.Int64))
		case store.KindFloat:
			d.Floats = append(d.Floats, re.Float64)
		case store.KindComplex:
			d.Complex = append(d.Complex, complex(re.Float64, im.Float64))
		default:
			return store.Dataset{}, fmt.Errorf("%w: %s has unknown kind %d",
				store.ErrKind, path, int(info.Kind))
		}
	}

	err = rows.Err()
	if err != nil {
		return store.Dataset{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	n := len(d.Ints) + len(d.Floats) + len(d.Complex)

	err = store.CheckShape(path, info.Shape, n)
	if err != nil {
		return store.Dataset{}, err
	}

	return d, nil
}

// WriteInts stores an int dataset.
func (s *Store) WriteInts(path string, shape []int, data []int) error {
	return s.write(path, store.KindInt, shape, len(data),
		func(stmt *sql.Stmt, i int) error {
			_, err := stmt.Exec(path, i, data[i], nil, nil)
			return err
		})
}

// WriteFloats stores a float dataset.
func (s *Store) WriteFloats(path string, shape []int, data []float64) error {
	return s.write(path, store.KindFloat, shape, len(data),
		func(stmt *sql.Stmt, i int) error {
			_, err := stmt.Exec(path, i, nil, data[i], nil)
			return err
		})
}

// WriteComplex stores a complex dataset.
func (s *Store) WriteComplex(path string, shape []int, data []complex128) error {
	return s.write(path, store.KindComplex, shape, len(data),
		func(stmt *sql.Stmt, i int) error {
			_, err := stmt.Exec(path, i, nil, real(data[i]), imag(data[i]))
			return err
		})
}

func (s *Store) write(
	path string,
	kind store.Kind,
	shape []int,
	n int,
	insert func(stmt *sql.Stmt, i int) error,
) (err error) {
	err = store.CheckShape(path, shape, n)
	if err != nil {
		return err
	}

	tx, err := s.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}

		err = tx.Commit()
	}()

	_, err = tx.Exec("DELETE FROM dataset_values WHERE path = ?", path)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO datasets (path, kind, shape) VALUES (?, ?, ?)",
		path, int(kind), formatShape(shape),
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		"INSERT INTO dataset_values (path, idx, ival, re, im) " +
			"VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		err = insert(stmt, i)
		if err != nil {
			return fmt.Errorf("cannot write %s[%d]: %w", path, i, err)
		}
	}

	return nil
}

// Paths returns the sorted paths of all datasets.
func (s *Store) Paths() ([]string, error) {
	rows, err := s.Query("SELECT path FROM datasets ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string

	for rows.Next() {
		var p string

		err = rows.Scan(&p)
		if err != nil {
			return nil, err
		}

		paths = append(paths, p)
	}

	return paths, rows.Err()
}

func formatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, s := range shape {
		parts[i] = strconv.Itoa(s)
	}

	return strings.Join(parts, ",")
}

func parseShape(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	shape := make([]int, len(parts))

	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}

		shape[i] = v
	}

	return shape, nil
}
