package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFlow(t *testing.T) {
	img := File{Name: "scutire.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}

	t.Run("select rotate and remove", func(t *testing.T) {
		u := NewUploadFlow()
		assert.Equal(t, UploadIdle, u.State())
		assert.ErrorIs(t, u.Rotate(), ErrNoFileSelected)

		require.NoError(t, u.Select(img))
		require.NoError(t, u.Rotate())
		require.NoError(t, u.Rotate())
		assert.Equal(t, 180, u.Rotation())

		require.NoError(t, u.Remove())
		assert.Equal(t, UploadIdle, u.State())
		assert.Equal(t, 0, u.Rotation())
		_, ok := u.File()
		assert.False(t, ok)
	})

	t.Run("rotation wraps after a full turn", func(t *testing.T) {
		u := NewUploadFlow()
		require.NoError(t, u.Select(img))
		for i := 0; i < 4; i++ {
			require.NoError(t, u.Rotate())
		}
		assert.Equal(t, 0, u.Rotation())
	})

	t.Run("replacing the file keeps rotation", func(t *testing.T) {
		u := NewUploadFlow()
		require.NoError(t, u.Select(img))
		require.NoError(t, u.Rotate())

		require.NoError(t, u.Select(File{Name: "alta.png", ContentType: "image/png"}))

		f, ok := u.File()
		assert.True(t, ok)
		assert.Equal(t, "alta.png", f.Name)
		assert.Equal(t, 90, u.Rotation())
	})

	t.Run("busy while uploading", func(t *testing.T) {
		u := NewUploadFlow()
		require.NoError(t, u.Select(img))
		_, rot, err := u.begin()
		require.NoError(t, err)
		assert.Equal(t, 0, rot)
		assert.Equal(t, UploadUploading, u.State())

		assert.ErrorIs(t, u.Select(img), ErrUploadBusy)
		assert.ErrorIs(t, u.Remove(), ErrUploadBusy)
		_, _, err = u.begin()
		assert.ErrorIs(t, err, ErrUploadBusy)

		u.fail()
		assert.Equal(t, UploadFileSelected, u.State())
		f, ok := u.File()
		assert.True(t, ok)
		assert.Equal(t, img.Name, f.Name)
	})

	t.Run("done clears the selection", func(t *testing.T) {
		u := NewUploadFlow()
		require.NoError(t, u.Select(img))
		require.NoError(t, u.Rotate())
		_, _, err := u.begin()
		require.NoError(t, err)

		u.done()
		assert.Equal(t, UploadSubmitted, u.State())
		assert.Equal(t, 0, u.Rotation())
		_, ok := u.File()
		assert.False(t, ok)
	})

	t.Run("negative begin without a file", func(t *testing.T) {
		_, _, err := NewUploadFlow().begin()
		assert.ErrorIs(t, err, ErrNoFileSelected)
	})
}

func TestFilter_Match(t *testing.T) {
	items := []Item{
		{Kind: "excuse", ID: "1", StudentName: "Popescu Ana", Stage: "submitted", Reason: "gripa"},
		{Kind: "short_leave", ID: "2", StudentName: "Ionescu Mihai", Stage: "approved", Reason: "dentist"},
	}

	assert.Len(t, filterItems(items, Filter{}), 2)
	assert.Len(t, filterItems(items, Filter{Kind: "excuse"}), 1)
	assert.Len(t, filterItems(items, Filter{Stage: "approved"}), 1)
	assert.Len(t, filterItems(items, Filter{Query: "  ANA "}), 1)
	assert.Len(t, filterItems(items, Filter{Query: "dentist"}), 1)
	assert.Empty(t, filterItems(items, Filter{Kind: "excuse", Stage: "approved"}))
}
