package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"codetrack/internal/providers"
)

// FileStore keeps the whole key space in memory and rewrites one zstd
// compressed JSON file on every mutation.
type FileStore struct {
	mu         sync.RWMutex
	path       string
	data       map[string]json.RawMessage
	compressor CompressorInterface
	logger     providers.Logger
	closed     bool
}

func OpenFileStore(path string, compressor CompressorInterface, logger providers.Logger) (*FileStore, error) {
	fs := &FileStore{
		path:       path,
		data:       make(map[string]json.RawMessage),
		compressor: compressor,
		logger:     logger,
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FileStore) load() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(raw)
	if err == nil {
		err = json.Unmarshal(decompressed, &f.data)
	}
	if err != nil {
		return f.quarantine(err)
	}
	if f.data == nil {
		f.data = make(map[string]json.RawMessage)
	}
	f.logger.Debugf(providers.TypeApp, "Loaded %d keys from %s", len(f.data), f.path)
	return nil
}

// quarantine moves an unreadable file aside and starts empty, so one bad
// write never locks the user out of the tracker.
func (f *FileStore) quarantine(cause error) error {
	aside := f.path + ".corrupt"
	if err := os.Rename(f.path, aside); err != nil {
		return fmt.Errorf("read %s: %w (move aside: %s)", f.path, cause, err)
	}
	f.data = make(map[string]json.RawMessage)
	f.logger.Warnf(providers.TypeApp, "Store file %s unreadable (%s), moved to %s", f.path, cause, aside)
	return nil
}

func (f *FileStore) Get(key string, out any) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return false, ErrClosed
	}

	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decode key %s: %w", key, err)
	}
	return true, nil
}

func (f *FileStore) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode key %s: %w", key, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	prev, existed := f.data[key]
	f.data[key] = raw
	if err := f.flush(); err != nil {
		if existed {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	prev, existed := f.data[key]
	if !existed {
		return nil
	}
	delete(f.data, key)
	if err := f.flush(); err != nil {
		f.data[key] = prev
		return err
	}
	return nil
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	f.compressor.Close()
	return nil
}

// flush must be called under f.mu.Lock().
func (f *FileStore) flush() error {
	jsonData, err := json.Marshal(f.data)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}
