package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iamasit07/othello/internal/domain"
	"github.com/rs/zerolog/log"
)

const ext = ".txt"

// Store keeps one text file per saved game: <dir>/<name>.txt.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: save name %q", domain.ErrInvalidCommand, name)
	}
	return filepath.Join(s.dir, name+ext), nil
}

// Save writes the record, replacing any save of the same name.
func (s *Store) Save(ctx context.Context, name string, rec domain.SaveRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}

	// write then rename so a failed save never truncates the previous one
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(rec.Marshal()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}

	log.Debug().Str("component", "store").Str("path", path).Msg("save written")
	return nil
}

// Load reads the save called name. A missing file is ErrSaveNotFound,
// anything else that goes wrong is ErrLoadFailed.
func (s *Store) Load(ctx context.Context, name string) (domain.SaveRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SaveRecord{}, err
	}
	path, err := s.path(name)
	if err != nil {
		return domain.SaveRecord{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.SaveRecord{}, fmt.Errorf("%w: %s", domain.ErrSaveNotFound, name)
	}
	if err != nil {
		return domain.SaveRecord{}, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}

	rec, err := domain.UnmarshalSaveRecord(data)
	if err != nil {
		return domain.SaveRecord{}, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}
	return rec, nil
}

// List returns the names of the saved games, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	return names, nil
}
