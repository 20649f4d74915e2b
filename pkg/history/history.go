// Package history keeps a small ring buffer of recent activity samples on
// disk so that one quiet sample does not stop the instance on its own.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/younsl/autostop/internal/models"
)

// Store is a JSON file of HistoryEntry values bounded by Size and TTL. It
// is only touched while the invocation lock is held.
type Store struct {
	Path string
	Size int
	TTL  time.Duration
}

func NewStore(path string, size int, ttl time.Duration) *Store {
	return &Store{Path: path, Size: size, TTL: ttl}
}

// Load returns the retained entries, oldest first. A missing file is an
// empty history.
func (s *Store) Load(now time.Time) ([]models.HistoryEntry, error) {
	content, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading history %s: %w", s.Path, err)
	}
	if len(content) == 0 {
		return nil, nil
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("error decoding history %s: %w", s.Path, err)
	}
	return Evict(entries, now, s.Size, s.TTL), nil
}

// Save replaces the history file atomically
func (s *Store) Save(entries []models.HistoryEntry) error {
	content, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding history: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating history directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return fmt.Errorf("error creating history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("error replacing history %s: %w", s.Path, err)
	}
	return nil
}

// Smooth folds the retained entries into snap, then records snap. A
// history that cannot be read is replaced and the unsmoothed snapshot is
// returned with the error.
func (s *Store) Smooth(now time.Time, snap models.ActivitySnapshot) (models.ActivitySnapshot, error) {
	retained, loadErr := s.Load(now)

	smoothed := snap
	if loadErr == nil {
		smoothed = Apply(snap, retained)
	}

	if entry, ok := EntryFrom(now, snap); ok {
		if err := s.Save(Append(retained, entry, s.Size)); err != nil {
			if loadErr != nil {
				return snap, loadErr
			}
			return snap, err
		}
	}

	if loadErr != nil {
		return snap, loadErr
	}
	return smoothed, nil
}

// EntryFrom converts a snapshot into a history entry. Snapshots with an
// unmeasured signal are not recorded.
func EntryFrom(now time.Time, snap models.ActivitySnapshot) (models.HistoryEntry, bool) {
	if !snap.CPUAvailable {
		return models.HistoryEntry{}, false
	}
	if !snap.ConnAvailable && !snap.ConnIgnored {
		return models.HistoryEntry{}, false
	}
	return models.HistoryEntry{
		Timestamp:   now,
		CPUPercent:  snap.CPUPercent,
		Connections: snap.Connections,
	}, true
}

// Apply raises the CPU figure of snap to the mean of the current and
// retained samples when that mean is higher. Connections seen in any
// retained sample are carried over so that the run counts as busy.
// Smoothing never lowers a signal.
func Apply(snap models.ActivitySnapshot, retained []models.HistoryEntry) models.ActivitySnapshot {
	if len(retained) == 0 {
		return snap
	}

	if snap.CPUAvailable {
		sum := snap.CPUPercent
		for _, e := range retained {
			sum += e.CPUPercent
		}
		snap.CPUPercent = max(snap.CPUPercent, sum/float64(len(retained)+1))
	}

	if !snap.ConnIgnored {
		for _, e := range retained {
			if e.Connections > snap.Connections {
				snap.Connections = e.Connections
			}
		}
	}
	return snap
}

// Append adds e and keeps the newest size entries
func Append(entries []models.HistoryEntry, e models.HistoryEntry, size int) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, e)
	if size > 0 && len(out) > size {
		out = out[len(out)-size:]
	}
	return out
}

// Evict drops entries older than ttl or from the future, sorts the rest by
// time and keeps the newest size entries
func Evict(entries []models.HistoryEntry, now time.Time, size int, ttl time.Duration) []models.HistoryEntry {
	kept := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		age := now.Sub(e.Timestamp)
		if age < 0 || (ttl > 0 && age > ttl) {
			continue
		}
		kept = append(kept, e)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})
	if size > 0 && len(kept) > size {
		kept = kept[len(kept)-size:]
	}
	return kept
}
