package service

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"blog-ui/database"
	"blog-ui/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(t *testing.T) (*PostService, PostDBOpener) {
	t.Helper()
	folder := t.TempDir()
	open := func() (*gorm.DB, database.PostDBCloser, error) {
		return database.OpenPostDB(folder, database.CurrentPostMonth())
	}
	activity := NewActivityLog(filepath.Join(t.TempDir(), "activity.log"))
	return NewPostService(open, activity), open
}

func seedPost(t *testing.T, open PostDBOpener, post model.Post) model.Post {
	t.Helper()
	db, closeDB, err := open()
	require.NoError(t, err)
	defer closeDB()
	require.NoError(t, db.Create(&post).Error)
	return post
}

func TestCreateRendersMarkdownBeforeStorage(t *testing.T) {
	s, open := newPostService(t)

	result := s.Create("Hello", "some **bold** text", "alice", []string{"intro", "meta"})
	require.True(t, result.OK(), result.Msg)

	db, closeDB, err := open()
	require.NoError(t, err)
	defer closeDB()

	var post model.Post
	require.NoError(t, db.First(&post).Error)
	assert.Equal(t, "Hello", post.Title)
	assert.Contains(t, post.Content, "<strong>bold</strong>")
	assert.Equal(t, "alice", post.Author)
	assert.Equal(t, model.Tags{"intro", "meta"}, post.Tags)
	assert.False(t, post.Timestamp.IsZero())
}

func TestDeleteArchivesFullRecord(t *testing.T) {
	s, open := newPostService(t)

	require.True(t, s.Create("Hello", "body", "alice", []string{"a"}).OK())

	posts, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	original := posts[0]

	require.True(t, s.Delete(original.PostId).OK())

	posts, err = s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, posts)

	db, closeDB, err := open()
	require.NoError(t, err)
	defer closeDB()

	var archived model.DeletedPost
	require.NoError(t, db.First(&archived).Error)
	assert.Equal(t, original.PostId, archived.PostId)
	assert.Equal(t, original.Title, archived.Title)
	assert.Equal(t, original.Content, archived.Content)
	assert.Equal(t, original.Author, archived.Author)
	assert.Equal(t, original.Tags, archived.Tags)
	assert.WithinDuration(t, original.Timestamp, archived.Timestamp, time.Millisecond)
}

func TestDeleteUnknownPostIsNotFound(t *testing.T) {
	s, _ := newPostService(t)
	assert.Equal(t, http.StatusNotFound, s.Delete(123).Status)
}

func TestListAllOrdersNewestFirst(t *testing.T) {
	s, open := newPostService(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, open, model.Post{Title: "oldest", Content: "c", Author: "a", Tags: model.Tags{}, Timestamp: base})
	seedPost(t, open, model.Post{Title: "newest", Content: "c", Author: "a", Tags: model.Tags{}, Timestamp: base.Add(2 * time.Hour)})
	seedPost(t, open, model.Post{Title: "middle", Content: "c", Author: "a", Tags: model.Tags{}, Timestamp: base.Add(time.Hour)})

	posts, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Title)
	assert.Equal(t, "middle", posts[1].Title)
	assert.Equal(t, "oldest", posts[2].Title)
}

func TestGetByID(t *testing.T) {
	s, open := newPostService(t)
	seeded := seedPost(t, open, model.Post{
		Title: "one", Content: "c", Author: "a", Tags: model.Tags{"t"},
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})

	post, err := s.GetByID(seeded.PostId)
	require.NoError(t, err)
	assert.Equal(t, "one", post.Title)

	_, err = s.GetByID(seeded.PostId + 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByAuthor(t *testing.T) {
	s, open := newPostService(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, open, model.Post{Title: "a1", Content: "c", Author: "alice", Tags: model.Tags{}, Timestamp: base})
	seedPost(t, open, model.Post{Title: "b1", Content: "c", Author: "bob", Tags: model.Tags{}, Timestamp: base.Add(time.Minute)})
	seedPost(t, open, model.Post{Title: "a2", Content: "c", Author: "alice", Tags: model.Tags{}, Timestamp: base.Add(2 * time.Minute)})

	posts, err := s.ListByAuthor("alice")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a2", posts[0].Title)
	assert.Equal(t, "a1", posts[1].Title)
}

func TestPostOperationsResolveToCurrentMonth(t *testing.T) {
	folder := t.TempDir()

	// Seed a post into a past month's partition.
	pastDB, closePast, err := database.OpenPostDB(folder, "2020_01")
	require.NoError(t, err)
	require.NoError(t, pastDB.Create(&model.Post{
		Title: "ancient", Content: "c", Author: "a", Tags: model.Tags{},
		Timestamp: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, closePast())

	open := func() (*gorm.DB, database.PostDBCloser, error) {
		return database.OpenPostDB(folder, database.CurrentPostMonth())
	}
	s := NewPostService(open, NewActivityLog(filepath.Join(t.TempDir(), "activity.log")))

	// Current-month visibility is the contract: older partitions stay dark.
	posts, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, posts)
}
