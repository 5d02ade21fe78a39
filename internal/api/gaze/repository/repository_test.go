package gazeRepository

import (
	"GazeDashboard/internal/api/gaze"
	"GazeDashboard/internal/entity"
	"GazeDashboard/pkg/redis"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const centerRow = "1,2024-03-01,1000,10,0.1,0.2,0.3,0.5,0.5,0.5,0.5,0.9,0.8"

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func newTestRepo(dir string, cache redis.IRedis) Repository {
	return New(Config{DataDir: dir, Profile: entity.DK2, CacheTTL: time.Minute}, cache, quietLogger())
}

func TestListParticipants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "P02.txt", centerRow)
	writeFile(t, dir, "P01.txt", centerRow)
	writeFile(t, dir, "notes.md", "ignore me")
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	participants, err := newTestRepo(dir, nil).ListParticipants(context.Background())
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}

	if len(participants) != 2 {
		t.Fatalf("Expected 2 participants, got %d", len(participants))
	}
	if participants[0].ID != "P01" || participants[1].ID != "P02" {
		t.Errorf("Expected sorted [P01 P02], got [%s %s]", participants[0].ID, participants[1].ID)
	}
	if participants[0].Path != filepath.Join(dir, "P01.txt") {
		t.Errorf("Unexpected path %s", participants[0].Path)
	}
}

func TestListParticipantsEmptyDir(t *testing.T) {
	participants, err := newTestRepo(t.TempDir(), nil).ListParticipants(context.Background())
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(participants) != 0 {
		t.Errorf("Expected no participants, got %d", len(participants))
	}
}

func TestListParticipantsMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")

	_, err := newTestRepo(dir, nil).ListParticipants(context.Background())

	var fsErr *gaze.FileSystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("Expected FileSystemError, got %v", err)
	}
	if fsErr.Path != dir {
		t.Errorf("Expected path %s, got %s", dir, fsErr.Path)
	}
}

func TestGetParticipant(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "P01.txt", centerRow)
	repo := newTestRepo(dir, nil)

	p, err := repo.GetParticipant(context.Background(), "P01")
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}
	if p.Size != int64(len(centerRow)) {
		t.Errorf("Expected size %d, got %d", len(centerRow), p.Size)
	}

	for _, id := range []string{"P99", "../P01", ""} {
		if _, err := repo.GetParticipant(context.Background(), id); !errors.Is(err, gaze.ErrParticipantNotFound) {
			t.Errorf("GetParticipant(%q): expected ErrParticipantNotFound, got %v", id, err)
		}
	}
}

func TestGetParticipantMissingDir(t *testing.T) {
	repo := newTestRepo(filepath.Join(t.TempDir(), "absent"), nil)

	_, err := repo.GetParticipant(context.Background(), "P01")
	if !errors.Is(err, gaze.ErrDataDirUnreadable) {
		t.Errorf("Expected ErrDataDirUnreadable, got %v", err)
	}
}

func TestParseSamplesDerivesCoordinates(t *testing.T) {
	samples, err := newTestRepo("", nil).ParseSamples(context.Background(), strings.NewReader(centerRow+"\n"), "P01")
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("Expected 1 sample, got %d", len(samples))
	}

	s := samples[0]
	if s.EyeX != 0.5 || s.EyeY != 0.5 {
		t.Errorf("Expected eye (0.5, 0.5), got (%v, %v)", s.EyeX, s.EyeY)
	}
	if s.PixelX != 480.0 || s.PixelY != 540.0 {
		t.Errorf("Expected pixel (480, 540), got (%v, %v)", s.PixelX, s.PixelY)
	}
	if s.Trial != 1 || s.Date != "2024-03-01" || s.CoreTime != "1000" || s.ExpTime != "10" {
		t.Errorf("Unexpected metadata %+v", s)
	}
	if s.Pitch != 0.1 || s.Yaw != 0.2 || s.Roll != 0.3 {
		t.Errorf("Unexpected head orientation %+v", s)
	}
	if s.RightConf != 0.9 || s.LeftConf != 0.8 {
		t.Errorf("Unexpected confidence %+v", s)
	}
}

func TestParseSamplesAveragesEyes(t *testing.T) {
	row := "3, 2024-03-01, 1000, 10, 0, 0, 0, 0.2, 0.4, 0.6, 0.8, 0.1, 0.1"

	samples, err := newTestRepo("", nil).ParseSamples(context.Background(), strings.NewReader(row), "P01")
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}

	s := samples[0]
	if diff := s.EyeX - 0.4; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("Expected eye_x 0.4, got %v", s.EyeX)
	}
	if diff := s.EyeY - 0.6; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("Expected eye_y 0.6, got %v", s.EyeY)
	}
}

func TestParseSamplesNumericTrialSpellings(t *testing.T) {
	tests := []struct {
		name  string
		trial string
		want  int
	}{
		{"integer trial", "7", 7},
		{"float trial", "1.0", 1},
		{"exponent trial", "1e0", 1},
		{"padded float trial", " 12.000", 12},
		{"negative float trial", "-3.0", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := tt.trial + ",2024-01-01,10:00,0.1,0,0,0,0.5,0.5,0.5,0.5,1,1"

			samples, err := newTestRepo("", nil).ParseSamples(context.Background(), strings.NewReader(row), "P01")
			if err != nil {
				t.Fatalf("ParseSamples failed: %v", err)
			}
			if len(samples) != 1 {
				t.Fatalf("Expected 1 sample, got %d", len(samples))
			}
			if samples[0].Trial != tt.want {
				t.Errorf("Expected trial %d, got %d", tt.want, samples[0].Trial)
			}
		})
	}
}

func TestParseSamplesSkipsBlankLines(t *testing.T) {
	rows := centerRow + "\n   \n\n\t\n" + centerRow + "\n"

	samples, err := newTestRepo("", nil).ParseSamples(context.Background(), strings.NewReader(rows), "P01")
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("Expected 2 samples, got %d", len(samples))
	}
}

func TestParseSamplesKeepsLowConfidence(t *testing.T) {
	rows := strings.Join([]string{
		centerRow,
		"2,2024-03-01,1001,11,0,0,0,0.5,0.5,0.5,0.5,0,0",
	}, "\n")

	samples, err := newTestRepo("", nil).ParseSamples(context.Background(), strings.NewReader(rows), "P01")
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("Expected zero-confidence rows to be kept, got %d samples", len(samples))
	}
}

func TestParseSamplesEmpty(t *testing.T) {
	samples, err := newTestRepo("", nil).ParseSamples(context.Background(), strings.NewReader(""), "P01")
	if err != nil {
		t.Fatalf("ParseSamples failed: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("Expected no samples, got %d", len(samples))
	}
}

func TestParseSamplesMalformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		row    int
		column string
	}{
		{
			name:  "12 fields",
			input: centerRow + "\n" + "2,2024-03-01,1000,10,0.1,0.2,0.3,0.5,0.5,0.5,0.5,0.9",
			row:   2,
		},
		{
			name:  "14 fields",
			input: centerRow + "\n" + centerRow + "\n" + centerRow + ",0.7",
			row:   3,
		},
		{
			name:   "non-numeric coordinate",
			input:  "1,2024-03-01,1000,10,0.1,0.2,0.3,0.5,0.5,abc,0.5,0.9,0.8",
			row:    1,
			column: "left_x",
		},
		{
			name:   "fractional trial",
			input:  centerRow + "\n" + "1.5,2024-03-01,1000,10,0.1,0.2,0.3,0.5,0.5,0.5,0.5,0.9,0.8",
			row:    2,
			column: "trial",
		},
		{
			name:   "non-numeric trial",
			input:  "first,2024-03-01,1000,10,0.1,0.2,0.3,0.5,0.5,0.5,0.5,0.9,0.8",
			row:    1,
			column: "trial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRepo("", nil).ParseSamples(context.Background(), strings.NewReader(tt.input), "P01")

			var parseErr *gaze.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected ParseError, got %v", err)
			}
			if parseErr.Row != tt.row {
				t.Errorf("Expected row %d, got %d", tt.row, parseErr.Row)
			}
			if parseErr.Column != tt.column {
				t.Errorf("Expected column %q, got %q", tt.column, parseErr.Column)
			}
			if parseErr.Source != "P01" {
				t.Errorf("Expected source P01, got %q", parseErr.Source)
			}
		})
	}
}

func TestLoadSamplesUsesCache(t *testing.T) {
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	dir := t.TempDir()
	writeFile(t, dir, "P01.txt", centerRow)
	repo := newTestRepo(dir, redis.NewFromClient(client))
	ctx := context.Background()

	p, err := repo.GetParticipant(ctx, "P01")
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}

	first, err := repo.LoadSamples(ctx, p)
	if err != nil {
		t.Fatalf("LoadSamples failed: %v", err)
	}
	if len(srv.Keys()) != 1 {
		t.Fatalf("Expected one cached entry, got %v", srv.Keys())
	}

	// served from cache once the file is gone
	if err := os.Remove(p.Path); err != nil {
		t.Fatal(err)
	}
	second, err := repo.LoadSamples(ctx, p)
	if err != nil {
		t.Fatalf("Cached LoadSamples failed: %v", err)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Errorf("Expected cached samples to equal the parsed ones")
	}
}

func TestLoadSamplesCacheDown(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	dir := t.TempDir()
	writeFile(t, dir, "P01.txt", centerRow)
	repo := newTestRepo(dir, redis.NewFromClient(client))
	ctx := context.Background()

	p, _ := repo.GetParticipant(ctx, "P01")
	samples, err := repo.LoadSamples(ctx, p)
	if err != nil {
		t.Fatalf("Expected fallback to file read, got %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("Expected 1 sample, got %d", len(samples))
	}
}

func TestLoadSamplesMissingFile(t *testing.T) {
	repo := newTestRepo(t.TempDir(), nil)

	_, err := repo.LoadSamples(context.Background(), entity.Participant{ID: "gone", Path: filepath.Join(t.TempDir(), "gone.txt")})
	if !errors.Is(err, gaze.ErrParticipantNotFound) {
		t.Errorf("Expected ErrParticipantNotFound, got %v", err)
	}
}
