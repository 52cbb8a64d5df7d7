package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gridedit/internal/gridstate"
)

// defaultRecords is the record set shown when no seed source is given.
var defaultRecords = []gridstate.Record{
	{ID: 1, Name: "Nguyễn Văn A", Age: 30},
	{ID: 2, Name: "Trần Thị B", Age: 25},
}

type seedRecord struct {
	ID   *int64 `yaml:"id"`
	Name string `yaml:"name"`
	Age  int    `yaml:"age"`
}

// parseSeed decodes a YAML list of records. Records without an id get one
// past the largest id in the file, in file order.
func parseSeed(data []byte) ([]gridstate.Record, error) {
	var raw []seedRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	var maxID int64
	seen := make(map[int64]int, len(raw))
	for i, r := range raw {
		if r.ID == nil {
			continue
		}
		if *r.ID <= 0 {
			return nil, fmt.Errorf("seed entry %d: id must be positive, got %d", i+1, *r.ID)
		}
		if prev, ok := seen[*r.ID]; ok {
			return nil, fmt.Errorf("seed entry %d: id %d already used by entry %d", i+1, *r.ID, prev+1)
		}
		seen[*r.ID] = i
		maxID = max(maxID, *r.ID)
	}

	records := make([]gridstate.Record, 0, len(raw))
	for _, r := range raw {
		rec := gridstate.Record{Name: r.Name, Age: r.Age}
		if r.ID != nil {
			rec.ID = *r.ID
		} else {
			maxID++
			rec.ID = maxID
		}
		records = append(records, rec)
	}
	return records, nil
}

func loadSeedFile(path string) ([]gridstate.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	records, err := parseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// loadInitialState builds the starting state from the database import, the
// seed file or the built-in records, in that order of precedence.
func loadInitialState(ctx context.Context, seedPath string, config *Config) (gridstate.State, error) {
	var (
		records []gridstate.Record
		err     error
		source  string
	)
	switch {
	case config != nil && config.enabled():
		source = config.Database
		records, err = config.loadRecords(ctx)
	case seedPath != "":
		source = seedPath
		records, err = loadSeedFile(seedPath)
	default:
		source = "built-in"
		records = defaultRecords
	}
	if err != nil {
		return gridstate.State{}, err
	}

	logger.Info("loaded records", "source", source, "count", len(records))
	state, err := gridstate.New(records...)
	if err != nil {
		return gridstate.State{}, fmt.Errorf("%s: %w", source, err)
	}
	return state, nil
}
