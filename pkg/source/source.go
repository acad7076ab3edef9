// Package source reads catalog responses from disk and turns them into
// datasets ready for the catalog controller.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/store"
)

// ErrUnsuccessful is returned for responses that decoded but carry
// success=false.
var ErrUnsuccessful = errors.New("source: response not successful")

// ReadFile decodes the catalog response at path into a dataset.
func ReadFile(path string) (*store.Dataset, error) {
	if path == "" {
		return nil, errors.New("source: no data file configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open: %w", err)
	}
	defer f.Close()

	resp, err := item.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", filepath.Base(path), err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, filepath.Base(path))
	}
	return &store.Dataset{
		RequestID: resp.RequestID,
		Source:    path,
		Items:     resp.Items,
		Filters:   resp.Filters,
		Imported:  time.Now().UTC(),
	}, nil
}
