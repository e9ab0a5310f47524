package qlearn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"tiles/game"
)

// Table file identification. Readers reject any other format or version.
const (
	FileFormat  = "tiles-qtable"
	FileVersion = 1
)

var ErrTableFormat = errors.New("unsupported q-table file")

// Values holds one action-value per direction, indexed by game.Direction.
type Values [game.NumDirections]float64

// Table maps board states to action-values. Entries are created lazily with
// all-zero values and never evicted, so the table grows with every new state
// visited during training.
type Table struct {
	size    int
	entries map[game.StateKey]*Values
}

func NewTable(size int) *Table {
	return &Table{
		size:    size,
		entries: make(map[game.StateKey]*Values),
	}
}

func (t *Table) Size() int {
	return t.size
}

// Len is the number of states visited so far.
func (t *Table) Len() int {
	return len(t.entries)
}

// Values returns the action-values for a state, all zero if it was never
// visited. It does not create an entry.
func (t *Table) Values(key game.StateKey) Values {
	if v, ok := t.entries[key]; ok {
		return *v
	}
	return Values{}
}

func (t *Table) Set(key game.StateKey, values Values) {
	v := values
	t.entries[key] = &v
}

// entry returns the stored values for a state, creating a zero entry first.
func (t *Table) entry(key game.StateKey) *Values {
	v, ok := t.entries[key]
	if !ok {
		v = &Values{}
		t.entries[key] = v
	}
	return v
}

// tableFile is the on-disk layout: keys are game.StateKey strings, values are
// ordered Up, Down, Left, Right.
type tableFile struct {
	Format  string               `json:"format"`
	Version int                  `json:"version"`
	Size    int                  `json:"size"`
	Entries map[string][]float64 `json:"entries"`
}

func (t *Table) Save(w io.Writer) error {
	file := tableFile{
		Format:  FileFormat,
		Version: FileVersion,
		Size:    t.size,
		Entries: make(map[string][]float64, len(t.entries)),
	}
	for key, values := range t.entries {
		file.Entries[string(key)] = values[:]
	}

	if err := json.NewEncoder(w).Encode(file); err != nil {
		return fmt.Errorf("failed to encode q-table: %w", err)
	}
	return nil
}

func Load(r io.Reader) (*Table, error) {
	var file tableFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode q-table: %w", err)
	}
	if file.Format != FileFormat || file.Version != FileVersion {
		return nil, fmt.Errorf("%w: format %q version %d", ErrTableFormat, file.Format, file.Version)
	}
	if file.Size < game.MinSize || file.Size > game.MaxSize {
		return nil, fmt.Errorf("%w: board size %d", ErrTableFormat, file.Size)
	}

	t := NewTable(file.Size)
	for key, values := range file.Entries {
		if cells := strings.Count(key, ",") + 1; cells != file.Size*file.Size {
			return nil, fmt.Errorf("%w: key %q has %d cells, want %d", ErrTableFormat, key, cells, file.Size*file.Size)
		}
		if len(values) != game.NumDirections {
			return nil, fmt.Errorf("%w: key %q has %d values, want %d", ErrTableFormat, key, len(values), game.NumDirections)
		}
		var v Values
		copy(v[:], values)
		t.Set(game.StateKey(key), v)
	}
	return t, nil
}

// SaveFile writes the table to path, replacing any existing file.
func (t *Table) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create q-table file: %w", err)
	}
	defer f.Close()

	if err := t.Save(f); err != nil {
		return err
	}
	return f.Close()
}

func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open q-table file: %w", err)
	}
	defer f.Close()

	return Load(f)
}
