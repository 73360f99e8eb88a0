package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mangohow/dynstack/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("s%d", n)
	})
}

func pushAll(t *testing.T, s *Store, id string, values ...string) {
	t.Helper()
	for _, v := range values {
		_, err := s.Push(id, v)
		require.NoError(t, err)
	}
}

func TestCreate(t *testing.T) {
	s := New(WithDefaultCapacity(4))

	info, err := s.CreateDefault()
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, 4, info.Capacity)
	assert.True(t, info.Empty)

	info, err = s.Create(0)
	require.NoError(t, err)
	assert.Equal(t, 0, info.Capacity)
	pushAll(t, s, info.ID, "x")
	got, err := s.Get(info.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Capacity)

	info, err = s.Create(2)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Capacity)

	_, err = s.Create(-1)
	assert.ErrorIs(t, err, errors.ErrInvalidState)
	assert.Equal(t, 3, s.Len())
}

func TestPushPopTop(t *testing.T) {
	s := New(sequentialIDs())
	info, err := s.Create(2)
	require.NoError(t, err)

	pushAll(t, s, info.ID, "6", "7", "8")

	got, err := s.Get(info.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Size)
	assert.Equal(t, 4, got.Capacity)
	assert.Equal(t, []string{"6", "7", "8"}, got.Values)

	top, err := s.Top(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "8", top)

	v, err := s.Pop(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "8", v)

	top, err = s.Top(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "7", top)

	for i := 0; i < 2; i++ {
		_, err = s.Pop(info.ID)
		require.NoError(t, err)
	}
	_, err = s.Pop(info.ID)
	assert.ErrorIs(t, err, errors.ErrEmptyStack)
	_, err = s.Top(info.ID)
	assert.ErrorIs(t, err, errors.ErrEmptyStack)
}

func TestNotFound(t *testing.T) {
	s := New()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = s.Push("nope", "x")
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = s.Pop("nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = s.Clone("nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.ErrorIs(t, s.Delete("nope"), errors.ErrNotFound)
}

func TestClone(t *testing.T) {
	s := New(sequentialIDs())
	src, err := s.CreateDefault()
	require.NoError(t, err)
	pushAll(t, s, src.ID, "al", "go", "rithms")

	cp, err := s.Clone(src.ID)
	require.NoError(t, err)
	assert.Equal(t, "s2", cp.ID)
	assert.Equal(t, []string{"al", "go", "rithms"}, cp.Values)

	_, err = s.Pop(cp.ID)
	require.NoError(t, err)

	orig, err := s.Get(src.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"al", "go", "rithms"}, orig.Values)
}

func TestMove(t *testing.T) {
	s := New(sequentialIDs())
	src, err := s.CreateDefault()
	require.NoError(t, err)
	dst, err := s.Create(8)
	require.NoError(t, err)
	pushAll(t, s, src.ID, "al", "go", "rithms")
	pushAll(t, s, dst.ID, "x")

	moved, err := s.Move(src.ID, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, dst.ID, moved.ID)
	assert.Equal(t, []string{"al", "go", "rithms"}, moved.Values)
	assert.Equal(t, 4, moved.Capacity)

	_, err = s.Get(src.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	self, err := s.Move(dst.ID, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, moved, self)

	_, err = s.Move("nope", dst.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	s := New(sequentialIDs())
	for i := 0; i < 3; i++ {
		_, err := s.CreateDefault()
		require.NoError(t, err)
	}

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "s1", list[0].ID)
	assert.Equal(t, "s3", list[2].ID)

	require.NoError(t, s.Delete("s2"))
	list = s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "s3", list[1].ID)
}

func TestConcurrentPush(t *testing.T) {
	s := New()
	info, err := s.CreateDefault()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := s.Push(info.ID, fmt.Sprintf("%d-%d", i, j))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.Get(info.ID)
	require.NoError(t, err)
	assert.Equal(t, 800, got.Size)
	assert.Equal(t, 1024, got.Capacity)
}
