package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

type Post struct {
	ID        string     `json:"id" bson:"_id"`
	Title     string     `json:"title" bson:"title"`
	Content   string     `json:"content" bson:"content"`
	Slug      string     `json:"slug" bson:"slug"`
	Author    string     `json:"author" bson:"author"`
	Category  string     `json:"category,omitempty" bson:"category,omitempty"`
	Tags      []string   `json:"tags" bson:"tags"`
	Status    PostStatus `json:"status" bson:"status"`
	ViewCount int        `json:"viewCount" bson:"view_count"`
	Likes     []string   `json:"likes" bson:"likes"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

func NewPost(title, content, author, category string, tags []string, status PostStatus) *Post {
	if status == "" {
		status = PostStatusDraft
	}
	p := &Post{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Content:   content,
		Author:    author,
		Category:  category,
		Tags:      TrimTags(tags),
		Status:    status,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}
	p.EnsureSlug()
	return p
}

// GenerateSlug lowercases the title, collapses every run of
// non-alphanumeric characters into a single hyphen and strips
// leading/trailing hyphens.
func GenerateSlug(title string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// EnsureSlug derives the slug from the title once. A post that already
// has a slug keeps it, even if the title changed since.
func (p *Post) EnsureSlug() {
	if p.Slug == "" {
		p.Slug = GenerateSlug(p.Title)
	}
}

func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// ToggleLike adds userID to the likes set or removes it when already
// present. Returns the resulting liked state for that user.
func (p *Post) ToggleLike(userID string) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, userID)
	return true
}

func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

func TrimTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}
