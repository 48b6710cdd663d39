package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// RecoveryResult indicates the outcome of a recovery attempt.
type RecoveryResult int

const (
	// RecoveryHealthy means the journal was healthy or recovered in place.
	RecoveryHealthy RecoveryResult = iota
	// RecoveryQuarantined means the damaged journal was moved aside and a
	// fresh one will be created.
	RecoveryQuarantined
	// RecoveryFailed means the journal could not be checked or moved.
	RecoveryFailed
)

func (r RecoveryResult) String() string {
	switch r {
	case RecoveryHealthy:
		return "healthy"
	case RecoveryQuarantined:
		return "quarantined"
	case RecoveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecoveryReport contains details about a recovery attempt.
type RecoveryReport struct {
	Result          RecoveryResult
	Path            string
	QuarantinedPath string
	WALRecovered    bool
	Steps           []RecoveryStep
}

// RecoveryStep represents a single step in the recovery process.
type RecoveryStep struct {
	Name      string
	Succeeded bool
	Message   string
	Duration  time.Duration
}

// Recover checks an on-disk journal before it is opened.
// Phase 1: integrity check
// Phase 2: WAL replay
// Phase 3: quarantine the damaged file
//
// The journal holds no domain data, so a damaged file is set aside
// rather than restored.
func Recover(dbPath string) (*RecoveryReport, error) {
	report := &RecoveryReport{Path: dbPath}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		report.Result = RecoveryHealthy
		report.Steps = append(report.Steps, RecoveryStep{
			Name:      "check_exists",
			Succeeded: true,
			Message:   "journal does not exist (first run)",
		})
		return report, nil
	}

	step := runRecoveryStep("integrity_check", func() (string, error) {
		return checkIntegrity(dbPath)
	})
	report.Steps = append(report.Steps, step)
	if step.Succeeded {
		report.Result = RecoveryHealthy
		return report, nil
	}

	slog.Warn("journal integrity check failed", "path", dbPath, "error", step.Message)

	if _, err := os.Stat(dbPath + "-wal"); err == nil {
		walStep := runRecoveryStep("wal_recovery", func() (string, error) {
			return replayWAL(dbPath)
		})
		report.Steps = append(report.Steps, walStep)

		if walStep.Succeeded {
			recheck := runRecoveryStep("post_wal_integrity", func() (string, error) {
				return checkIntegrity(dbPath)
			})
			report.Steps = append(report.Steps, recheck)

			if recheck.Succeeded {
				report.Result = RecoveryHealthy
				report.WALRecovered = true
				slog.Info("journal recovered via WAL replay", "path", dbPath)
				return report, nil
			}
		}
	}

	quarantined := dbPath + ".corrupted." + time.Now().Format("20060102-150405")
	moveStep := runRecoveryStep("quarantine", func() (string, error) {
		if err := moveFile(dbPath, quarantined); err != nil {
			return "", err
		}
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
		return quarantined, nil
	})
	report.Steps = append(report.Steps, moveStep)

	if !moveStep.Succeeded {
		report.Result = RecoveryFailed
		return report, errors.New("journal recovery failed: " + moveStep.Message)
	}

	report.Result = RecoveryQuarantined
	report.QuarantinedPath = quarantined
	slog.Warn("damaged journal moved aside", "path", dbPath, "quarantined", quarantined)

	return report, nil
}

func runRecoveryStep(name string, fn func() (string, error)) RecoveryStep {
	start := time.Now()
	msg, err := fn()

	step := RecoveryStep{
		Name:     name,
		Duration: time.Since(start),
	}

	if err != nil {
		step.Message = err.Error()
	} else {
		step.Succeeded = true
		step.Message = msg
	}

	return step
}

func checkIntegrity(dbPath string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return "", fmt.Errorf("running integrity check: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var result string
		if err := rows.Scan(&result); err != nil {
			return "", fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating results: %w", err)
	}

	if len(results) == 1 && results[0] == "ok" {
		return "ok", nil
	}

	return "", fmt.Errorf("integrity check failed: %s", strings.Join(results, "; "))
}

func replayWAL(dbPath string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_txlock=immediate", dbPath))
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(RESTART)"); err != nil {
		return "", fmt.Errorf("WAL checkpoint: %w", err)
	}

	return "WAL checkpoint complete", nil
}

// moveFile moves a file from src to dst.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}

	return os.Remove(src)
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("syncing destination: %w", err)
	}

	return nil
}
