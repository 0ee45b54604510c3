package service

import (
	"time"

	"blog-ui/database"
	"blog-ui/database/model"
	"blog-ui/logger"
	"blog-ui/util/markdown"

	"gorm.io/gorm"
)

// PostDBOpener yields the post database for the current calendar month.
// Each registry operation opens its own connection and releases it
// through the closer on every exit path.
type PostDBOpener func() (*gorm.DB, database.PostDBCloser, error)

// PostService is the post registry over the monthly-partitioned post
// databases. Visibility is current-month-only: operations always resolve
// to the partition matching the month at call time.
type PostService struct {
	open     PostDBOpener
	activity *ActivityLog
}

func NewPostService(open PostDBOpener, activity *ActivityLog) *PostService {
	return &PostService{open: open, activity: activity}
}

// Create renders content from markdown into display-safe HTML and inserts
// the post into the current month's active table.
func (s *PostService) Create(title, content, author string, tags []string) Result {
	rendered, err := markdown.Render(content)
	if err != nil {
		logger.Warning("create post: markdown rendering failed:", err)
		return fail(err)
	}

	db, closeDB, err := s.open()
	if err != nil {
		logger.Warning("create post: open post db failed:", err)
		return fail(err)
	}
	defer closeDB()

	post := &model.Post{
		Title:     title,
		Content:   rendered,
		Author:    author,
		Tags:      tags,
		Timestamp: time.Now(),
	}
	if err := db.Create(post).Error; err != nil {
		logger.Warning("create post: insert failed:", err)
		return fail(err)
	}

	s.activity.Appendf("Post created by %s", author)
	return ok("Post created successfully")
}

// Delete archives the post into deleted_posts with its original post_id
// and timestamp, then removes it from posts, as one transaction.
func (s *PostService) Delete(postID int) Result {
	db, closeDB, err := s.open()
	if err != nil {
		logger.Warning("delete post: open post db failed:", err)
		return fail(err)
	}
	defer closeDB()

	var post model.Post
	if err := db.Where("post_id = ?", postID).First(&post).Error; err != nil {
		if database.IsNotFound(err) {
			return notFound("Post not found")
		}
		logger.Warning("delete post: lookup failed:", err)
		return fail(err)
	}

	archived := model.DeletedPost(post)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", postID).Delete(&model.Post{}).Error
	})
	if err != nil {
		logger.Warning("delete post: archive failed:", err)
		return fail(err)
	}

	s.activity.Appendf("Post deleted with ID %d", postID)
	return ok("Post deleted successfully")
}

// ListAll returns the current month's active posts, newest first.
func (s *PostService) ListAll() ([]model.Post, error) {
	db, closeDB, err := s.open()
	if err != nil {
		return nil, err
	}
	defer closeDB()

	var posts []model.Post
	err = db.Order("timestamp DESC").Find(&posts).Error
	return posts, err
}

// GetByID returns one post or ErrNotFound.
func (s *PostService) GetByID(postID int) (*model.Post, error) {
	db, closeDB, err := s.open()
	if err != nil {
		return nil, err
	}
	defer closeDB()

	var post model.Post
	if err := db.Where("post_id = ?", postID).First(&post).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListByAuthor returns the current month's posts by one author, newest
// first.
func (s *PostService) ListByAuthor(author string) ([]model.Post, error) {
	db, closeDB, err := s.open()
	if err != nil {
		return nil, err
	}
	defer closeDB()

	var posts []model.Post
	if err := db.Where("post_author = ?", author).Order("timestamp DESC").Find(&posts).Error; err != nil {
		return nil, err
	}

	s.activity.Appendf("Posts fetched for %s", author)
	return posts, nil
}
