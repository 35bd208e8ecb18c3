// Package store is the durable key-value layer behind the dashboard: the
// config record, one cache entry per platform and the progress ledger.
package store

import (
	"errors"
	"fmt"

	"codetrack/internal/providers"
	"codetrack/internal/structures"
)

// Well-known keys.
const (
	KeyHistory  = "ct_history"
	KeyConfig   = "ct_config"
	KeyLCCache  = "ct_lc_cache"
	KeyGFGCache = "ct_gfg_cache"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

var ErrClosed = errors.New("store is closed")

// Store persists JSON-encoded values by key. Get reports whether the key
// existed; a missing key is not an error.
type Store interface {
	Get(key string, out any) (bool, error)
	Put(key string, value any) error
	Delete(key string) error
	Close() error
}

func NewStore(conf *structures.Config, compressor CompressorInterface, logger providers.Logger) (Store, func(), error) {
	var (
		s   Store
		err error
	)
	switch conf.Storage.Driver {
	case DriverFile, "":
		s, err = OpenFileStore(conf.Storage.FilePath, compressor, logger)
	case DriverSQLite:
		s, err = OpenSQLiteStore(conf.Storage.FilePath, logger)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Infof(providers.TypeApp, "Storage opened: driver=%s path=%s", conf.Storage.Driver, conf.Storage.FilePath)
	cleanup := func() {
		if err := s.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error while closing storage: %s", err)
		}
	}
	return s, cleanup, nil
}
