// Package feed orders posts for display.
package feed

import (
	"context"
	"sort"

	"github.com/boardhq/board/internal/models"
)

// PostSource yields every post, newest first.
type PostSource interface {
	GetAllPosts(ctx context.Context) ([]models.Post, error)
}

// FollowSource answers who a viewer follows.
type FollowSource interface {
	GetFollowingIDs(followerID uint) ([]uint, error)
}

// Composer builds the three post listings: the strict following feed, the
// boosted discover feed and the plain global listing.
type Composer struct {
	posts   PostSource
	follows FollowSource
}

func NewComposer(posts PostSource, follows FollowSource) *Composer {
	return &Composer{posts: posts, follows: follows}
}

// Recent returns all posts in reverse-chronological order, independent of
// any viewer.
func (c *Composer) Recent(ctx context.Context) ([]models.Post, error) {
	posts, err := c.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	sortByCreated(posts)
	return posts, nil
}

// Following returns only posts authored by users the viewer follows, newest
// first. A viewer following nobody gets an empty feed. Callers must ensure
// the viewer is authenticated.
func (c *Composer) Following(ctx context.Context, viewerID uint) ([]models.Post, error) {
	followed, err := c.followedSet(viewerID)
	if err != nil {
		return nil, err
	}
	if len(followed) == 0 {
		return []models.Post{}, nil
	}

	posts, err := c.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if followed[p.AuthorID] {
			out = append(out, p)
		}
	}
	sortByCreated(out)
	return out, nil
}

// Boosted returns all posts, those from followed authors ranked first; both
// partitions stay in reverse-chronological order. For an anonymous viewer
// (ID 0) nothing is followed and the result is plain reverse-chronological.
func (c *Composer) Boosted(ctx context.Context, viewerID uint) ([]models.Post, error) {
	followed := map[uint]bool{}
	if viewerID != 0 {
		var err error
		followed, err = c.followedSet(viewerID)
		if err != nil {
			return nil, err
		}
	}

	posts, err := c.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		fi, fj := followed[posts[i].AuthorID], followed[posts[j].AuthorID]
		if fi != fj {
			return fi
		}
		return newerFirst(posts[i], posts[j])
	})
	return posts, nil
}

func (c *Composer) followedSet(viewerID uint) (map[uint]bool, error) {
	ids, err := c.follows.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func sortByCreated(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return newerFirst(posts[i], posts[j])
	})
}

// newerFirst orders by creation time descending with the ID as tiebreak so
// the ordering is total even when timestamps collide.
func newerFirst(a, b models.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.Hex() > b.ID.Hex()
}
