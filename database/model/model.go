package model

import (
	"database/sql/driver"
	"time"

	"blog-ui/util/common"

	"github.com/goccy/go-json"
)

// Account is an approved identity permitted to log in.
type Account struct {
	UserId         int    `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement"`
	Username       string `json:"username" gorm:"unique;not null"`
	HashedUsername string `json:"-" gorm:"column:hashed_username;not null"`
	Password       string `json:"-" gorm:"not null"`
	Email          string `json:"email" gorm:"not null"`
	Age            int    `json:"age" gorm:"not null"`
	PhoneNumber    string `json:"phone_number" gorm:"column:phone_number;not null"`
}

func (Account) TableName() string { return "users" }

// PendingAccount is a registered identity awaiting admin approval. Same
// shape as Account, disjoint table.
type PendingAccount Account

func (PendingAccount) TableName() string { return "pending_users" }

// AdminAccount keys on the raw username, not the hashed lookup key.
type AdminAccount struct {
	Username string `json:"username" gorm:"primaryKey"`
	Password string `json:"-" gorm:"not null"`
}

func (AdminAccount) TableName() string { return "admin_users" }

// Tags is stored as a JSON array in a TEXT column.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (t *Tags) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), t)
	case []byte:
		return json.Unmarshal(v, t)
	case nil:
		*t = nil
		return nil
	default:
		return common.NewErrorf("cannot scan %T into Tags", src)
	}
}

// Post lives in the current month's posts table. Content holds the
// rendered HTML, not the raw markdown.
type Post struct {
	PostId    int       `json:"post_id" gorm:"column:post_id;primaryKey;autoIncrement"`
	Title     string    `json:"post_title" gorm:"column:post_title;not null"`
	Content   string    `json:"post_content" gorm:"column:post_content;not null"`
	Author    string    `json:"post_author" gorm:"column:post_author;not null"`
	Tags      Tags      `json:"tags" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"column:timestamp;not null"`
}

func (Post) TableName() string { return "posts" }

// DeletedPost is the soft-delete archive: the full record is copied here
// with its original post_id and timestamp before removal from posts.
type DeletedPost Post

func (DeletedPost) TableName() string { return "deleted_posts" }
