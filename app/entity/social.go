package entity

import "time"

type Post struct {
	ID        uint64
	UserID    uint64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        uint64
	PostID    uint64
	UserID    uint64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Like struct {
	ID        uint64
	PostID    uint64
	UserID    uint64
	CreatedAt time.Time
}

type Follow struct {
	ID         uint64
	FollowerID uint64
	FolloweeID uint64
	CreatedAt  time.Time
}
