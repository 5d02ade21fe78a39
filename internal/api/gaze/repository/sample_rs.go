package gazeRepository

import (
	"GazeDashboard/internal/api/gaze"
	"GazeDashboard/internal/entity"
	contextPkg "GazeDashboard/pkg/context"
	"GazeDashboard/pkg/redis"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const fieldCount = 13

// largest integer a float64 holds exactly
const maxExactTrial = 1 << 53

var columns = [fieldCount]string{
	"trial", "date", "core_time", "exp_time", "pitch", "yaw", "roll",
	"right_x", "right_y", "left_x", "left_y", "right_conf", "left_conf",
}

func (r *repository) LoadSamples(ctx context.Context, participant entity.Participant) ([]entity.Sample, error) {
	requestID := contextPkg.GetRequestID(ctx)
	key := r.cacheKey(participant)

	if cached, err := r.cache.Get(ctx, key); err == nil {
		var samples []entity.Sample
		if err := jsoniter.Unmarshal(cached, &samples); err == nil {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"participant": participant.ID,
				"samples":     len(samples),
			}).Debug("Loaded samples from cache")
			return samples, nil
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        key,
		}).Warn("Discarding undecodable cache entry")
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Warn("Sample cache unavailable, reading file")
	}

	file, err := os.Open(participant.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, gaze.ErrParticipantNotFound
		}
		return nil, &gaze.FileSystemError{Path: participant.Path, Err: err}
	}
	defer file.Close()

	samples, err := r.ParseSamples(ctx, file, participant.ID)
	if err != nil {
		return nil, err
	}

	if encoded, err := jsoniter.Marshal(samples); err == nil {
		if err := r.cache.Set(ctx, key, encoded, r.cfg.CacheTTL); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
				"error":      err.Error(),
			}).Warn("Failed to cache samples")
		}
	}

	return samples, nil
}

// ParseSamples reads a headerless 13 column log and derives gaze coordinates for every row.
// Low confidence rows are kept.
func (r *repository) ParseSamples(ctx context.Context, in io.Reader, source string) ([]entity.Sample, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	samples := make([]entity.Sample, 0, 1024)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &gaze.ParseError{Source: source, Row: csvErr.Line, Err: csvErr.Err}
			}
			return nil, &gaze.FileSystemError{Path: source, Err: err}
		}

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		row, _ := reader.FieldPos(0)

		if len(samples)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		sample, err := parseRecord(record, source, row)
		if err != nil {
			return nil, err
		}
		sample.Derive(r.cfg.Profile)
		samples = append(samples, sample)
	}

	return samples, nil
}

func parseRecord(record []string, source string, row int) (entity.Sample, error) {
	if len(record) != fieldCount {
		return entity.Sample{}, &gaze.ParseError{
			Source: source,
			Row:    row,
			Err:    fmt.Errorf("expected %d fields, got %d", fieldCount, len(record)),
		}
	}

	var s entity.Sample
	var err error

	if s.Trial, err = parseTrial(record[0]); err != nil {
		return entity.Sample{}, &gaze.ParseError{Source: source, Row: row, Column: columns[0], Err: err}
	}

	s.Date = strings.TrimSpace(record[1])
	s.CoreTime = strings.TrimSpace(record[2])
	s.ExpTime = strings.TrimSpace(record[3])

	floats := [...]*float64{
		4:  &s.Pitch,
		5:  &s.Yaw,
		6:  &s.Roll,
		7:  &s.RightX,
		8:  &s.RightY,
		9:  &s.LeftX,
		10: &s.LeftY,
		11: &s.RightConf,
		12: &s.LeftConf,
	}
	for i := 4; i < fieldCount; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			return entity.Sample{}, &gaze.ParseError{Source: source, Row: row, Column: columns[i], Err: numError(err)}
		}
		*floats[i] = v
	}

	return s, nil
}

// parseTrial accepts any numeric spelling of a whole number ("3", "3.0", "3e0").
func parseTrial(raw string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, numError(err)
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactTrial {
		return 0, fmt.Errorf("%q is not a whole number", strings.TrimSpace(raw))
	}
	return int(f), nil
}

func numError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Errorf("%q is not a number", numErr.Num)
	}
	return err
}

func (r *repository) cacheKey(p entity.Participant) string {
	return fmt.Sprintf("gaze:samples:%s:%gx%g:%s:%d:%d",
		r.cfg.Profile.Name, r.cfg.Profile.Width, r.cfg.Profile.Height, p.ID, p.Size, p.ModifiedAt.UnixNano())
}
