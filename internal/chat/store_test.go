package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendPreservesOrder(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Append(RoleUser, "hi")
	s.Append(RoleAgent, "hello")
	s.Append(RoleUser, "how are you")

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	require.Equal(t, RoleUser, msgs[0].Role)
	require.Equal(t, "hi", msgs[0].Content)
	require.Equal(t, RoleAgent, msgs[1].Role)
	require.Equal(t, "how are you", msgs[2].Content)
	require.Equal(t, 3, s.Len())
}

func TestAppendAssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a := s.Append(RoleUser, "one")
	b := s.Append(RoleUser, "two")
	require.NotEqual(t, a, b)

	got, ok := s.Get(a)
	require.True(t, ok)
	require.Equal(t, "one", got.Content)
}

func TestAppendContentGrowsMonotonically(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.Append(RoleAgent, "")

	for _, r := range "hello" {
		require.NoError(t, s.AppendContent(id, string(r)))
	}

	got, ok := s.Get(id)
	require.True(t, ok)
	require.Equal(t, "hello", got.Content)
}

func TestAppendContentUnknownID(t *testing.T) {
	t.Parallel()

	s := NewStore()
	err := s.AppendContent("nope", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown message")
}

func TestMessagesReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.Append(RoleAgent, "a")

	snapshot := s.Messages()
	require.NoError(t, s.AppendContent(id, "b"))
	require.Equal(t, "a", snapshot[0].Content, "snapshot must not see later appends")

	got, _ := s.Get(id)
	require.Equal(t, "ab", got.Content)
}
