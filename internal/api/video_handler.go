package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/clipcast/clipcast/internal/auth"
	"github.com/clipcast/clipcast/pkg/clipcast"
)

// maxUploadMemory caps how much of a multipart body is buffered in memory;
// larger files spill to disk.
const maxUploadMemory = 32 << 20

// VideoHandler handles HTTP requests for video assets
type VideoHandler struct {
	service clipcast.Service
	tokens  *jwtauth.JWTAuth
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(service clipcast.Service, tokens *jwtauth.JWTAuth) *VideoHandler {
	return &VideoHandler{service: service, tokens: tokens}
}

// Routes returns the routes for videos. Reads are public; mutations
// require a verified token.
func (h *VideoHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/view/{videoID}", h.GetVideo)
	r.Get("/videos", h.ListVideos)
	r.Get("/search", h.SearchVideos)
	r.Get("/author/{email}", h.ListByAuthor)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.tokens))
		r.Use(jwtauth.Authenticator)

		r.Post("/upload", h.UploadVideo)
		r.Patch("/{videoID}", h.UpdateVideo)
		r.Put("/{videoID}/thumbnail", h.ReplaceThumbnail)
		r.Delete("/{videoID}", h.DeleteVideo)
	})

	return r
}

// VideoResponse is the response body for a video
type VideoResponse struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	Email        string    `json:"email"`
	Quality      string    `json:"quality"`
	UploadDate   time.Time `json:"uploadDate"`
	Version      int64     `json:"version"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
}

func viewResponse(v *clipcast.AssetView) VideoResponse {
	resp := assetResponse(&v.Asset)
	resp.VideoURL = v.VideoURL
	resp.ThumbnailURL = v.ThumbnailURL
	return resp
}

func assetResponse(a *clipcast.Asset) VideoResponse {
	return VideoResponse{
		VideoID:     a.ID.String(),
		Title:       a.Title,
		Description: a.Description,
		Author:      a.Author,
		Email:       a.OwnerEmail,
		Quality:     a.Quality,
		UploadDate:  a.CreatedAt,
		Version:     a.Version,
	}
}

// UploadVideo publishes a new video from a multipart form with "video" and
// "thumbnail" files plus metadata fields
func (h *VideoHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	callerEmail, err := auth.CallerEmail(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	video, videoHeader, err := r.FormFile("video")
	if err != nil {
		http.Error(w, "video file is required", http.StatusBadRequest)
		return
	}
	defer video.Close()

	thumbnail, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		http.Error(w, "thumbnail file is required", http.StatusBadRequest)
		return
	}
	defer thumbnail.Close()

	req := clipcast.CreateAssetRequest{
		OwnerEmail:  callerEmail,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Author:      r.FormValue("author"),
		Quality:     r.FormValue("quality"),
		Video: clipcast.BlobPayload{
			Reader:      video,
			ContentType: videoHeader.Header.Get("Content-Type"),
			FileName:    videoHeader.Filename,
		},
		Thumbnail: clipcast.BlobPayload{
			Reader:      thumbnail,
			ContentType: thumbHeader.Header.Get("Content-Type"),
			FileName:    thumbHeader.Filename,
		},
	}

	asset, err := h.service.CreateAsset(r.Context(), req)
	if err != nil {
		if req.Validate() != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Failed to create asset", "error", err)
		http.Error(w, "failed to upload video", http.StatusInternalServerError)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, assetResponse(asset))
}

// GetVideo returns one video with resolved access URLs
func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "videoID"))
	if err != nil {
		http.Error(w, "invalid video ID", http.StatusBadRequest)
		return
	}

	view, err := h.service.GetAsset(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, viewResponse(view))
}

// ListVideos returns the whole catalog
func (h *VideoHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, clipcast.ListAssetsRequest{})
}

// SearchVideos filters the catalog by a substring query
func (h *VideoHandler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "query parameter is required", http.StatusBadRequest)
		return
	}
	h.list(w, r, clipcast.ListAssetsRequest{Query: query})
}

// ListByAuthor returns the videos owned by one account
func (h *VideoHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, clipcast.ListAssetsRequest{OwnerEmail: chi.URLParam(r, "email")})
}

func (h *VideoHandler) list(w http.ResponseWriter, r *http.Request, req clipcast.ListAssetsRequest) {
	views, err := h.service.ListAssets(r.Context(), req)
	if err != nil {
		slog.Error("Failed to list assets", "error", err)
		http.Error(w, "failed to list videos", http.StatusInternalServerError)
		return
	}

	resp := make([]VideoResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, viewResponse(view))
	}

	render.JSON(w, r, resp)
}

// UpdateVideoRequest is the request body for editing display metadata.
// Absent fields are left unchanged.
type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Author      *string `json:"author"`
	Quality     *string `json:"quality"`
}

// UpdateVideo edits a video's display metadata
func (h *VideoHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	callerEmail, err := auth.CallerEmail(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "videoID"))
	if err != nil {
		http.Error(w, "invalid video ID", http.StatusBadRequest)
		return
	}

	var req UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.service.UpdateAssetFields(r.Context(), clipcast.UpdateAssetFieldsRequest{
		AssetID:     id,
		CallerEmail: callerEmail,
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Quality:     req.Quality,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, assetResponse(asset))
}

// ReplaceThumbnail swaps a video's thumbnail for the uploaded file
func (h *VideoHandler) ReplaceThumbnail(w http.ResponseWriter, r *http.Request) {
	callerEmail, err := auth.CallerEmail(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "videoID"))
	if err != nil {
		http.Error(w, "invalid video ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	thumbnail, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		http.Error(w, "thumbnail file is required", http.StatusBadRequest)
		return
	}
	defer thumbnail.Close()

	asset, err := h.service.ReplaceThumbnail(r.Context(), clipcast.ReplaceThumbnailRequest{
		AssetID:     id,
		CallerEmail: callerEmail,
		Thumbnail: clipcast.BlobPayload{
			Reader:      thumbnail,
			ContentType: thumbHeader.Header.Get("Content-Type"),
			FileName:    thumbHeader.Filename,
		},
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, assetResponse(asset))
}

// DeleteVideo removes a video and its blobs
func (h *VideoHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	callerEmail, err := auth.CallerEmail(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "videoID"))
	if err != nil {
		http.Error(w, "invalid video ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteAsset(r.Context(), id, callerEmail); err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "video deleted successfully"})
}

func (h *VideoHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, clipcast.ErrAssetNotFound):
		http.Error(w, "video not found", http.StatusNotFound)
	case errors.Is(err, clipcast.ErrForbidden):
		http.Error(w, "you are not the owner of this video", http.StatusForbidden)
	case errors.Is(err, clipcast.ErrVersionConflict):
		http.Error(w, "video was modified concurrently, re-fetch and retry", http.StatusConflict)
	default:
		slog.Error("Asset operation failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
