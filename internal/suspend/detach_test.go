package suspend

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestForeground(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv(foregroundEnv, "")
		assert.False(t, Foreground())
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv(foregroundEnv, "1")
		assert.True(t, Foreground())
	})
}

func TestNotifyReady(t *testing.T) {
	t.Run("no launcher", func(t *testing.T) {
		t.Setenv(readyFdEnv, "")
		require.NoError(t, NotifyReady())
	})

	t.Run("bad fd value", func(t *testing.T) {
		t.Setenv(readyFdEnv, "not-a-number")
		require.Error(t, NotifyReady())
	})

	t.Run("writes one byte", func(t *testing.T) {
		reader, writer, err := os.Pipe()
		require.NoError(t, err)
		defer reader.Close()

		// Hand NotifyReady its own duplicate of the write end; it
		// closes what it is given.
		fd, err := unix.Dup(int(writer.Fd()))
		require.NoError(t, err)
		t.Setenv(readyFdEnv, strconv.Itoa(fd))

		require.NoError(t, NotifyReady())
		require.NoError(t, writer.Close())

		buf := make([]byte, 2)
		n, err := reader.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
