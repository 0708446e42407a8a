// Package lock keeps a single interactive mori session writing to the journal.
// The lockfile holds "pid|started-at"; a lock whose process is gone, or is no
// longer mori, is stale and gets replaced.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpid          = os.Getpid
)

// ErrLocked is returned when another live mori session holds the lock.
var ErrLocked = errors.New("another mori session is already running")

// Holder is what a lockfile says about its owner.
type Holder struct {
	PID       int
	StartedAt time.Time
}

type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire takes the lock in dir.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := Path(dir)
	pid := getpid()

	for attempt := 0; attempt < 2; attempt++ {
		err := writeExclusive(path, pid)
		if err == nil {
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, readErr := ReadHolder(path)
		if readErr == nil && holder.PID != pid && isAlive(holder.PID) {
			return nil, fmt.Errorf("%w (pid %d, since %s)", ErrLocked, holder.PID, holder.StartedAt.Format(time.Kitchen))
		}

		logger.Warn("Removing stale lockfile", "path", path, "error", readErr)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: lockfile keeps reappearing", ErrLocked)
}

func writeExclusive(path string, pid int) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	_, werr := fmt.Fprintf(f, "%d|%s", pid, time.Now().Format(time.RFC3339))
	cerr := f.Close()
	if werr != nil {
		os.Remove(path)
		return werr
	}
	return cerr
}

// ReadHolder parses the lockfile at path.
func ReadHolder(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Holder{}, errors.New("lockfile is malformed")
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid < 1 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	started, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return Holder{}, errors.New("invalid timestamp in lockfile")
	}
	return Holder{PID: pid, StartedAt: started}, nil
}

func isAlive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

// Release removes the lockfile if this lock still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := ReadHolder(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
