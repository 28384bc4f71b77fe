package handlers

import (
	"net/http"
	"strconv"

	"taskblog/internal/auth"
	"taskblog/internal/handlers/dto"
	"taskblog/internal/logger"
	"taskblog/internal/models"
	"taskblog/internal/repository"
	"taskblog/internal/service"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	service PostService
}

func NewPostHandler(service PostService) *PostHandler {
	return &PostHandler{service: service}
}

// GET /api/posts
func (h *PostHandler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: list posts")

	page, limit := pageParams(r)
	filter := repository.PostFilter{
		Category: r.URL.Query().Get("category"),
		Status:   models.PostStatus(r.URL.Query().Get("status")),
		Author:   r.URL.Query().Get("author"),
		Page:     page,
		Limit:    limit,
	}

	posts, total, err := h.service.ListPosts(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"posts": dto.FromPostList(posts),
		"pagination": dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: totalPages(total, limit),
		},
	})
}

// GET /api/posts/{id} — the parameter may be an id or a slug.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: get post")

	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.FromPost(post))
}

// POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: create post")

	var req dto.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user := auth.UserFromContext(r.Context())
	post, err := h.service.CreatePost(r.Context(), user, service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		Status:   models.PostStatus(req.Status),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.FromPost(post))
}

// PUT /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: update post")

	var req dto.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var opts []service.PostOption
	if req.Title != nil {
		opts = append(opts, service.WithPostTitle(*req.Title))
	}
	if req.Content != nil {
		opts = append(opts, service.WithPostContent(*req.Content))
	}
	if req.Category != nil {
		opts = append(opts, service.WithPostCategory(*req.Category))
	}
	if req.Tags != nil {
		opts = append(opts, service.WithPostTags(*req.Tags))
	}
	if req.Status != nil {
		opts = append(opts, service.WithPostStatus(models.PostStatus(*req.Status)))
	}

	user := auth.UserFromContext(r.Context())
	post, err := h.service.UpdatePost(r.Context(), user, chi.URLParam(r, "id"), opts...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromPost(post))
}

// DELETE /api/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: delete post")

	user := auth.UserFromContext(r.Context())
	if err := h.service.DeletePost(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted successfully",
	})
}

// POST /api/posts/{id}/like
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: like post")

	user := auth.UserFromContext(r.Context())
	likes, liked, err := h.service.LikePost(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"likes": likes,
		"liked": liked,
	})
}

func pageParams(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v >= 1 {
		limit = v
	}
	return page, limit
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
