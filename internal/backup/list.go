package backup

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"
)

// List returns a summary of every snapshot, newest first. A missing backup
// root yields an empty list. Snapshots with missing or unreadable metadata
// are still listed, with empty metadata fields.
func (s *Store) List() ([]Summary, error) {
	summaries, err := s.list()
	if err != nil {
		return nil, fsError(OpList, s.root, err)
	}
	return summaries, nil
}

func (s *Store) list() ([]Summary, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Summary{}, nil
		}
		return nil, err
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		summary := Summary{
			ID:   entry.Name(),
			Path: s.SnapshotPath(entry.Name()),
		}
		if meta, metaErr := readMetadata(s.fs, summary.Path); metaErr == nil {
			created, name := meta.CreatedAt, meta.ProjectName
			summary.CreatedAt = &created
			summary.ProjectName = &name
			summary.FilesCount = len(meta.Files)
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID > summaries[j].ID
	})
	return summaries, nil
}

// Delete removes the snapshot with the given id. Deleting an id that does
// not exist fails with a FilesystemError wrapping ErrNotFound.
func (s *Store) Delete(id string) (*DeleteResult, error) {
	dir := s.SnapshotPath(id)
	if err := validateID(id); err != nil {
		return nil, fsError(OpDelete, dir, err)
	}
	if !isDir(s.fs, dir) {
		return nil, fsError(OpDelete, dir, fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	if err := s.fs.RemoveAll(dir); err != nil {
		return nil, fsError(OpDelete, dir, err)
	}
	return &DeleteResult{Success: true, Deleted: id}, nil
}

// Prune keeps the maxBackups newest snapshots and removes the rest. A
// snapshot that cannot be removed is recorded in the result and pruning
// continues with the next one. Only a failure to list the store is returned
// as an error.
func (s *Store) Prune(maxBackups int) (*PruneResult, error) {
	if maxBackups < 0 {
		maxBackups = 0
	}

	summaries, err := s.list()
	if err != nil {
		return nil, fsError(OpClean, s.root, err)
	}

	if len(summaries) <= maxBackups {
		return &PruneResult{Kept: len(summaries)}, nil
	}

	result := &PruneResult{Kept: maxBackups}
	for _, summary := range summaries[maxBackups:] {
		if err := s.fs.RemoveAll(summary.Path); err != nil {
			result.Failures = append(result.Failures, PruneFailure{ID: summary.ID, Error: err.Error()})
			result.Kept++
			continue
		}
		result.Deleted++
	}
	return result, nil
}

// Stats reports the snapshot count, their combined size in bytes, and the
// oldest and newest ids, which are nil for an empty store. Snapshots whose
// size cannot be measured count toward the total but add nothing to the size.
func (s *Store) Stats() (*Stats, error) {
	summaries, err := s.list()
	if err != nil {
		return nil, fsError(OpStats, s.root, err)
	}

	stats := &Stats{TotalBackups: len(summaries)}
	if len(summaries) == 0 {
		return stats, nil
	}

	for _, summary := range summaries {
		size, sizeErr := dirSize(s.fs, summary.Path)
		if sizeErr != nil {
			continue
		}
		stats.TotalSize += size
	}

	newest, oldest := summaries[0].ID, summaries[len(summaries)-1].ID
	stats.NewestBackup = &newest
	stats.OldestBackup = &oldest
	return stats, nil
}
