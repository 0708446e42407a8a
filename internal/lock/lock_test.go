package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubProcesses(t *testing.T, self int, running map[int]string) {
	t.Helper()
	oldFind, oldPid := findProcessFunc, getpid
	t.Cleanup(func() { findProcessFunc, getpid = oldFind, oldPid })

	getpid = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{100: "mori"})

	l, err := Acquire(dir)
	require.NoError(t, err)

	holder, err := ReadHolder(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, 100, holder.PID)

	require.NoError(t, l.Release())
	_, err = os.Stat(Path(dir))
	assert.True(t, os.IsNotExist(err))

	// Releasing twice is harmless.
	assert.NoError(t, l.Release())
}

func TestAcquireRefusesLiveHolder(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{100: "mori", 200: "mori"})
	require.NoError(t, os.WriteFile(Path(dir), []byte("200|2024-06-01T09:00:00Z"), 0600))

	_, err := Acquire(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))
	assert.Contains(t, err.Error(), "200")
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{name: "dead process", content: "200|2024-06-01T09:00:00Z", running: map[int]string{}},
		{name: "pid reused by other program", content: "200|2024-06-01T09:00:00Z", running: map[int]string{200: "bash"}},
		{name: "malformed", content: "garbage", running: map[int]string{}},
		{name: "own pid", content: "100|2024-06-01T09:00:00Z", running: map[int]string{100: "mori"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			stubProcesses(t, 100, tt.running)
			require.NoError(t, os.WriteFile(Path(dir), []byte(tt.content), 0600))

			l, err := Acquire(dir)
			require.NoError(t, err)
			defer l.Release()

			holder, err := ReadHolder(Path(dir))
			require.NoError(t, err)
			assert.Equal(t, 100, holder.PID)
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, nil)

	l, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(Path(dir), []byte("300|2024-06-01T09:00:00Z"), 0600))

	require.NoError(t, l.Release())
	_, err = os.Stat(Path(dir))
	assert.NoError(t, err)
}

func TestReadHolderErrors(t *testing.T) {
	dir := t.TempDir()
	for _, content := range []string{"", "x|2024-06-01T09:00:00Z", "0|2024-06-01T09:00:00Z", "12|yesterday", "1|2|3"} {
		path := filepath.Join(dir, "lock")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
		_, err := ReadHolder(path)
		assert.Error(t, err, content)
	}

	var nilLock *Lock
	assert.NoError(t, nilLock.Release())
}
