// Package community is the session-scoped discussion feed. Nothing here is persisted.
package community

import (
	"context"
	"log"
	"scamshield/internal/core/domain"
	"scamshield/internal/core/ports"
	"strings"
	"sync"
	"time"
)

const (
	AIAuthor   = "ScamShield AI"
	DefaultTag = "General"
	JustNow    = "Just now"
)

type Feed struct {
	Replier ports.Replier
	Now     func() time.Time

	mu            sync.Mutex
	posts         []domain.CommunityPost // most recent first
	commentInputs map[int64]string
	lastID        int64

	pending sync.WaitGroup
}

func NewFeed(replier ports.Replier, seed []domain.CommunityPost) *Feed {
	posts := make([]domain.CommunityPost, 0, len(seed))
	for _, p := range seed {
		posts = append(posts, p.Clone())
	}
	return &Feed{
		Replier:       replier,
		Now:           time.Now,
		posts:         posts,
		commentInputs: make(map[int64]string),
	}
}

// Publish prepends a post for user and asks the replier for a moderator comment in the
// background. It reports false, changing nothing, without a user or with blank content.
func (f *Feed) Publish(content string, user *domain.User) (domain.CommunityPost, bool) {
	if user == nil || strings.TrimSpace(content) == "" {
		return domain.CommunityPost{}, false
	}

	f.mu.Lock()
	post := domain.CommunityPost{
		ID:        f.nextID(),
		Author:    user.Username,
		Avatar:    user.Avatar,
		Content:   content,
		Timestamp: JustNow,
		LikedBy:   []string{},
		Comments:  []domain.Comment{},
		Tags:      []string{DefaultTag},
	}
	f.posts = append([]domain.CommunityPost{post}, f.posts...)
	f.mu.Unlock()

	if r := f.Replier; r != nil {
		f.pending.Add(1)
		go f.reply(r, post.ID, content)
	}
	return post.Clone(), true
}

func (f *Feed) reply(r ports.Replier, postID int64, content string) {
	defer f.pending.Done()
	defer func() {
		if p := recover(); p != nil {
			log.Printf("AI Reply failed for post %d: %v", postID, p)
		}
	}()

	text := r.GenerateReply(context.Background(), content)

	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.find(postID)
	if p == nil {
		return
	}
	c := domain.Comment{
		ID:        f.nextID(),
		Author:    AIAuthor,
		Content:   text,
		Timestamp: JustNow,
		IsAi:      true,
	}
	p.Comments = append([]domain.Comment{c}, p.Comments...)
}

// ToggleLike adds user to the post's liked-by set, or removes them if already there.
func (f *Feed) ToggleLike(postID int64, user *domain.User) (domain.CommunityPost, bool) {
	if user == nil {
		return domain.CommunityPost{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.find(postID)
	if p == nil {
		return domain.CommunityPost{}, false
	}

	if p.IsLikedBy(user.Username) {
		kept := make([]string, 0, len(p.LikedBy))
		for _, u := range p.LikedBy {
			if u != user.Username {
				kept = append(kept, u)
			}
		}
		p.LikedBy = kept
	} else {
		p.LikedBy = append(p.LikedBy, user.Username)
	}
	return p.Clone(), true
}

// AddComment appends a user comment at the end of the post's comments and clears the
// pending input for that post.
func (f *Feed) AddComment(postID int64, text string, user *domain.User) (domain.Comment, bool) {
	if user == nil || strings.TrimSpace(text) == "" {
		return domain.Comment{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.find(postID)
	if p == nil {
		return domain.Comment{}, false
	}

	c := domain.Comment{
		ID:        f.nextID(),
		Author:    user.Username,
		Content:   text,
		Timestamp: JustNow,
	}
	p.Comments = append(p.Comments, c)
	f.commentInputs[postID] = ""
	return c, true
}

func (f *Feed) SetCommentInput(postID int64, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commentInputs[postID] = text
}

func (f *Feed) CommentInput(postID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commentInputs[postID]
}

// SubmitComment posts whatever is pending in the post's comment input.
func (f *Feed) SubmitComment(postID int64, user *domain.User) (domain.Comment, bool) {
	return f.AddComment(postID, f.CommentInput(postID), user)
}

// Posts returns a copy of the feed, most recent first.
func (f *Feed) Posts() []domain.CommunityPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CommunityPost, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p.Clone())
	}
	return out
}

func (f *Feed) Post(postID int64) (domain.CommunityPost, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.find(postID)
	if p == nil {
		return domain.CommunityPost{}, false
	}
	return p.Clone(), true
}

// Wait blocks until every in-flight AI reply has landed.
func (f *Feed) Wait() {
	f.pending.Wait()
}

func (f *Feed) find(postID int64) *domain.CommunityPost {
	for i := range f.posts {
		if f.posts[i].ID == postID {
			return &f.posts[i]
		}
	}
	return nil
}

// nextID is millisecond-clock based and strictly increasing. Callers hold f.mu.
func (f *Feed) nextID() int64 {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	id := now().UnixMilli()
	if id <= f.lastID {
		id = f.lastID + 1
	}
	f.lastID = id
	return id
}
