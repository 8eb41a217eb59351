package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Seed loads a fixture shaped like a json-server db.json
// ({"testCases": [...], "testSuites": [...], "users": [...]}) into repo.
// Ids in the fixture are kept.
func Seed(ctx context.Context, repo Repository, r io.Reader) (int, error) {
	var fixture map[string][]Document
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return 0, fmt.Errorf("parse seed: %w", err)
	}

	count := 0
	// Fixed order keeps referenced suites and users ahead of cases.
	for _, collection := range []string{CollectionTestSuites, CollectionUsers, CollectionTestCases} {
		for _, doc := range fixture[collection] {
			if _, err := repo.Create(ctx, collection, doc); err != nil {
				return count, fmt.Errorf("seed %s: %w", collection, err)
			}
			count++
		}
	}
	return count, nil
}

// SeedFile seeds repo from a fixture file on disk
func SeedFile(ctx context.Context, repo Repository, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Seed(ctx, repo, f)
}
