package handlers

import (
	"net/http"
	"scamshield/internal/core/domain"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type PostsResponse struct {
	Success bool                   `json:"success"`
	Posts   []domain.CommunityPost `json:"posts"`
}

type PostResponse struct {
	Success bool                 `json:"success"`
	Post    domain.CommunityPost `json:"post"`
}

type CommentResponse struct {
	Success bool           `json:"success"`
	Comment domain.Comment `json:"comment"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

type CommentRequest struct {
	Text *string `json:"text,omitempty"`
}

type CommentInputRequest struct {
	Text string `json:"text"`
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PostsResponse{Success: true, Posts: h.Feed.Posts()})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := h.Session.User()
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Login required")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}

	post, ok := h.Feed.Publish(req.Content, user)
	if !ok {
		writeError(w, http.StatusBadRequest, "Post was not published")
		return
	}
	writeJSON(w, http.StatusCreated, PostResponse{Success: true, Post: post})
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	user := h.Session.User()
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Login required")
		return
	}

	post, ok := h.Feed.ToggleLike(id, user)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, PostResponse{Success: true, Post: post})
}

func (h *Handler) SetCommentInput(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	var req CommentInputRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.Feed.SetCommentInput(id, req.Text)
	writeJSON(w, http.StatusOK, MessageResponse{Success: true})
}

// AddComment posts text, or the pending comment input when text is omitted.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	var req CommentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := h.Session.User()
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Login required")
		return
	}
	if _, exists := h.Feed.Post(id); !exists {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	var (
		comment domain.Comment
		added   bool
	)
	if req.Text != nil {
		comment, added = h.Feed.AddComment(id, *req.Text, user)
	} else {
		comment, added = h.Feed.SubmitComment(id, user)
	}
	if !added {
		writeError(w, http.StatusBadRequest, "Comment is required")
		return
	}
	writeJSON(w, http.StatusCreated, CommentResponse{Success: true, Comment: comment})
}
