package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// IFileStore abstracts blob storage for uploaded assets.
type IFileStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

type creatorFunc func(args interface{}) (IFileStore, error)

var registry = make(map[string]creatorFunc)

func register(name string, creator creatorFunc) {
	registry[name] = creator
}

// Create builds a store from the configured type name and its raw config
// blob.
func Create(typ string, args interface{}) (IFileStore, error) {
	creator, ok := registry[typ]
	if !ok {
		return nil, fmt.Errorf("unknown file store type: %s", typ)
	}
	return creator(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode store config: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode store config: %w", err)
	}
	return nil
}
