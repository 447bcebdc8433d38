package statistics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Report is the JSON summary written by WriteReport
type Report struct {
	Matches      int     `json:"matches"`
	Seed         int64   `json:"seed"`
	RedWins      int     `json:"red_wins"`
	BlueWins     int     `json:"blue_wins"`
	RedWinRate   float64 `json:"red_win_rate"`
	Rounds       int     `json:"rounds"`
	MeanRounds   float64 `json:"mean_rounds"`
	RoundsStdDev float64 `json:"rounds_std_dev"`
	RoundsP95    float64 `json:"rounds_p95"`
	Draws        int     `json:"draws"`
	DrawRate     float64 `json:"draw_rate"`
	Timeouts     int     `json:"timeouts"`
	Throws       int     `json:"throws"`
	Hits         int     `json:"hits"`
	HitRate      float64 `json:"hit_rate"`
	MeanMVPKills float64 `json:"mean_mvp_kills"`
	MaxMVPKills  int     `json:"max_mvp_kills"`
	MeanSeconds  float64 `json:"mean_match_seconds"`
}

// Report summarises the statistics for a run seeded with seed
func (s *Statistics) Report(seed int64) Report {
	return Report{
		Matches:      s.Matches,
		Seed:         seed,
		RedWins:      s.RedWins,
		BlueWins:     s.BlueWins,
		RedWinRate:   s.RedWinRate(),
		Rounds:       s.Rounds,
		MeanRounds:   s.MeanRounds(),
		RoundsStdDev: s.RoundsStdDev(),
		RoundsP95:    s.Percentile(0.95),
		Draws:        s.Draws,
		DrawRate:     s.DrawRate(),
		Timeouts:     s.Timeouts,
		Throws:       s.Throws,
		Hits:         s.Hits,
		HitRate:      s.HitRate(),
		MeanMVPKills: s.MeanMVPKills(),
		MaxMVPKills:  s.MaxMVPKills,
		MeanSeconds:  s.MeanDuration().Seconds(),
	}
}

// WriteReport writes the report as indented JSON
func WriteReport(filename string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(filename, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeFileAtomic writes to a temporary name in the same directory and
// renames it into place, so readers see either the old file or the
// complete new one.
func writeFileAtomic(filename string, write func(w io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := write(tmpFile); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
