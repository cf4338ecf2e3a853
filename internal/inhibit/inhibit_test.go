package inhibit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieFromReply(t *testing.T) {
	t.Run("single uint32 cookie", func(t *testing.T) {
		cookie, err := cookieFromReply([]interface{}{uint32(42)})

		require.NoError(t, err)
		assert.Equal(t, uint32(42), cookie)
	})

	t.Run("empty reply", func(t *testing.T) {
		_, err := cookieFromReply(nil)

		require.ErrorIs(t, err, ErrUnexpectedReply)
	})

	t.Run("too many values", func(t *testing.T) {
		_, err := cookieFromReply([]interface{}{uint32(42), uint32(43)})

		require.ErrorIs(t, err, ErrUnexpectedReply)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := cookieFromReply([]interface{}{int32(42)})

		require.ErrorIs(t, err, ErrUnexpectedReply)
	})

	t.Run("string instead of cookie", func(t *testing.T) {
		_, err := cookieFromReply([]interface{}{"42"})

		require.ErrorIs(t, err, ErrUnexpectedReply)
	})
}

func TestCheckVoidReply(t *testing.T) {
	t.Run("empty reply", func(t *testing.T) {
		require.NoError(t, checkVoidReply(nil))
	})

	t.Run("unexpected value", func(t *testing.T) {
		require.ErrorIs(t, checkVoidReply([]interface{}{uint32(1)}), ErrUnexpectedReply)
	})
}
