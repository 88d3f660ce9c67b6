package models

import "time"

// Post is an entry in the community feed.
type Post struct {
	ID         string    `bson:"id" json:"id"`
	AuthorID   string    `bson:"authorId" json:"authorId"`
	AuthorName string    `bson:"authorName" json:"authorName"`
	Content    string    `bson:"content" json:"content"`
	LikeCount  int       `bson:"likeCount" json:"likeCount"`
	LikedBy    []string  `bson:"likedBy,omitempty" json:"-"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID         string    `bson:"id" json:"id"`
	PostID     string    `bson:"postId" json:"postId"`
	AuthorID   string    `bson:"authorId" json:"authorId"`
	AuthorName string    `bson:"authorName" json:"authorName"`
	Text       string    `bson:"text" json:"text"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
