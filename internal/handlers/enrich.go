package handlers

import (
	"github.com/boardhq/board/internal/models"
	"github.com/boardhq/board/internal/repositories"
)

// FeedEntry is a post with author info, derived counts and the viewer's
// liked flag.
type FeedEntry struct {
	models.Post
	Author        models.UserCompact `json:"author"`
	LikesCount    int64              `json:"likes_count"`
	CommentsCount int64              `json:"comments_count"`
	IsLiked       bool               `json:"is_liked"`
}

// buildFeedEntries decorates posts for display. viewerID 0 marks an
// anonymous viewer, whose liked flags are all false.
func buildFeedEntries(
	posts []models.Post,
	viewerID uint,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
) ([]FeedEntry, error) {
	authors := make(map[uint]models.UserCompact)
	entries := make([]FeedEntry, len(posts))

	for i, p := range posts {
		author, ok := authors[p.AuthorID]
		if !ok {
			if u, err := users.GetUserByID(p.AuthorID); err == nil {
				author = u.ToCompact()
			}
			authors[p.AuthorID] = author
		}

		pid := p.ID.Hex()
		likesCount, err := likes.GetLikesCount(pid)
		if err != nil {
			return nil, err
		}
		commentsCount, err := comments.GetCommentsCount(pid)
		if err != nil {
			return nil, err
		}
		liked, err := likes.HasUserLiked(pid, viewerID)
		if err != nil {
			return nil, err
		}

		entries[i] = FeedEntry{
			Post:          p,
			Author:        author,
			LikesCount:    likesCount,
			CommentsCount: commentsCount,
			IsLiked:       liked,
		}
	}
	return entries, nil
}
