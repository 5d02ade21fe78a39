package gazeRepository

import (
	"GazeDashboard/internal/api/gaze"
	"GazeDashboard/internal/entity"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

func (r *repository) ListParticipants(ctx context.Context) ([]entity.Participant, error) {
	entries, err := os.ReadDir(r.cfg.DataDir)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"data_dir": r.cfg.DataDir,
			"error":    err.Error(),
		}).Error("Failed to read gaze data directory")
		return nil, &gaze.FileSystemError{Path: r.cfg.DataDir, Err: err}
	}

	participants := make([]entity.Participant, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), r.cfg.FileExt) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), r.cfg.FileExt)
		if id == "" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, &gaze.FileSystemError{Path: filepath.Join(r.cfg.DataDir, entry.Name()), Err: err}
		}

		participants = append(participants, entity.Participant{
			ID:         id,
			Path:       filepath.Join(r.cfg.DataDir, entry.Name()),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(participants, func(i, j int) bool {
		return participants[i].ID < participants[j].ID
	})

	r.log.WithFields(logrus.Fields{
		"data_dir": r.cfg.DataDir,
		"count":    len(participants),
	}).Debug("Discovered participants")

	return participants, nil
}

func (r *repository) GetParticipant(ctx context.Context, id string) (entity.Participant, error) {
	if !gaze.ValidParticipantID(id) {
		return entity.Participant{}, gaze.ErrParticipantNotFound
	}

	path := filepath.Join(r.cfg.DataDir, id+r.cfg.FileExt)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, dirErr := os.Stat(r.cfg.DataDir); dirErr != nil {
				return entity.Participant{}, &gaze.FileSystemError{Path: r.cfg.DataDir, Err: dirErr}
			}
			return entity.Participant{}, gaze.ErrParticipantNotFound
		}
		return entity.Participant{}, &gaze.FileSystemError{Path: path, Err: err}
	}

	if info.IsDir() {
		return entity.Participant{}, gaze.ErrParticipantNotFound
	}

	return entity.Participant{
		ID:         id,
		Path:       path,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}, nil
}
