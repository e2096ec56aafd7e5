package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smokecodex/hookah-booking/internal/model"
	"github.com/smokecodex/hookah-booking/internal/repository"
)

// PostHandler serves the social feed: posts, comments and likes.
type PostHandler struct {
	Posts *repository.PostRepo
}

func NewPostHandler(p *repository.PostRepo) *PostHandler {
	return &PostHandler{Posts: p}
}

type createPostReq struct {
	Content string `json:"content" validate:"required"`
}

type postResp struct {
	ID         uint64    `json:"id"`
	AuthorID   uint64    `json:"author_id"`
	Content    string    `json:"content"`
	LikesCount int64     `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatePost publishes a feed entry by the caller. POST /posts
func (h *PostHandler) CreatePost(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createPostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := &model.Post{AuthorID: uid, Content: req.Content}
	if err := h.Posts.CreatePost(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create post failed"})
	}
	return c.JSON(http.StatusCreated, postResp{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		Content:    p.Content,
		LikesCount: 0,
		CreatedAt:  p.CreatedAt,
	})
}

// ListByAuthor returns a user's posts with like counts, newest first.
// GET /users/:id/posts
func (h *PostHandler) ListByAuthor(c echo.Context) error {
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]postResp, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResp{
			ID:         p.ID,
			AuthorID:   p.AuthorID,
			Content:    p.Content,
			LikesCount: p.LikesCount,
			CreatedAt:  p.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": out})
}

// Like records a like on a post. Liking twice is a no-op.
// POST /posts/:id/like
func (h *PostHandler) Like(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Posts.Like(ctx, postID, uid); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "like failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type createCommentReq struct {
	Content string `json:"content" validate:"required"`
}

type commentResp struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	AuthorID  uint64    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateComment replies to a post. POST /posts/:id/comments
func (h *PostHandler) CreateComment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}
	var req createCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cm := &model.Comment{PostID: postID, AuthorID: uid, Content: req.Content}
	if err := h.Posts.CreateComment(ctx, cm); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
	}
	return c.JSON(http.StatusCreated, commentResp{
		ID:        cm.ID,
		PostID:    cm.PostID,
		AuthorID:  cm.AuthorID,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
	})
}

// ListComments returns the comments of a post, oldest first.
// GET /posts/:id/comments
func (h *PostHandler) ListComments(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Posts.Exists(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	comments, err := h.Posts.ListComments(ctx, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]commentResp, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentResp{
			ID:        cm.ID,
			PostID:    cm.PostID,
			AuthorID:  cm.AuthorID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": out})
}
