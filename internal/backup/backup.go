// Package backup keeps rotating snapshots of the SQLite journal database.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/logger"
)

const timestampLayout = "20060102-150405"

var ErrNoDatabase = errors.New("database does not exist")

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Name returns the backup's file name.
func (b BackupInfo) Name() string {
	return filepath.Base(b.Path)
}

// Manager handles backup operations
type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

// NewManager creates a backup manager for the database at dbPath. Backups
// live in a "backups" directory next to it.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database and prunes all but the newest backups.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.createBackup()
	if err != nil {
		return "", err
	}

	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) createBackup() (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if err := vacuumInto(m.dbPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	logger.Debug("Created backup", "path", backupPath)
	return backupPath, nil
}

// nextBackupPath picks mori-<timestamp>.db, adding -N when that name is taken.
func (m *Manager) nextBackupPath() (string, error) {
	stamp := m.now().Format(timestampLayout)
	name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
	path := filepath.Join(m.backupDir, name)

	for counter := 1; fileExists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		name = fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, constants.BackupFileSuffix)
		path = filepath.Join(m.backupDir, name)
	}
	return path, nil
}

// vacuumInto writes a compacted copy of src to dst.
func vacuumInto(src, dst string) error {
	db, err := sqlx.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := checkDatabase(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		return err
	}
	return nil
}

func checkDatabase(db *sqlx.DB) error {
	var count int
	return db.Get(&count, "SELECT COUNT(*) FROM sqlite_master")
}

// parseBackupName extracts the timestamp from mori-YYYYMMDD-HHMMSS[-N].db.
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stem := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	parts := strings.Split(stem, "-")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, 0, false
	}

	ts, err := time.ParseInLocation(timestampLayout, parts[0]+"-"+parts[1], time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}

	counter := 0
	if len(parts) == 3 {
		counter, err = strconv.Atoi(parts[2])
		if err != nil || counter < 1 {
			return time.Time{}, 0, false
		}
	}
	return ts, counter, true
}

// ListBackups returns all available backups, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type candidate struct {
		BackupInfo
		counter int
	}

	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, counter, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			BackupInfo: BackupInfo{
				Path:      filepath.Join(m.backupDir, entry.Name()),
				Timestamp: ts,
				Size:      info.Size(),
			},
			counter: counter,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Timestamp.Equal(found[j].Timestamp) {
			return found[i].counter > found[j].counter
		}
		return found[i].Timestamp.After(found[j].Timestamp)
	})

	return lo.Map(found, func(c candidate, _ int) BackupInfo { return c.BackupInfo }), nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for _, b := range lo.Drop(backups, m.keep) {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		logger.Debug("Removed old backup", "path", b.Path)
	}
	return nil
}

// RestoreBackup replaces the database with backupPath. The current database,
// if any, is first saved as a new backup whose path is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if !fileExists(backupPath) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if fileExists(m.dbPath) {
		// Not rotated, so the snapshot can never prune the backup being restored.
		p, err := m.createBackup()
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		safety = p
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		os.Remove(tempPath)
		return safety, fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return safety, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Restored database from backup", "backup", backupPath)
	return safety, nil
}

// verifyBackup checks that path is a SQLite database holding the journal table.
func verifyBackup(path string) error {
	db, err := sqlx.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'journal_entries'"); err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no journal_entries table")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	// Sync to ensure data is written to disk
	return destFile.Sync()
}
