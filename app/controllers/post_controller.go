package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendError(w, r, internalError(MsgPostsListFailed, err))
		return
	}
	sendJSON(w, r, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendError(w, r, notFound(MsgPostNotFound))
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendError(w, r, classify(err, MsgPostGetFailed))
		return
	}
	sendJSON(w, r, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if err := decodeBody(w, r, &input, models.MsgPostFieldsRequired); err != nil {
		sendError(w, r, classify(err, MsgPostSaveFailed))
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), input)
	if err != nil {
		sendError(w, r, classify(err, MsgPostSaveFailed))
		return
	}
	sendJSON(w, r, http.StatusCreated, post)
}

// Edit replaces title and contents of an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendError(w, r, notFound(MsgPostNotFound))
		return
	}

	var input models.PostInput
	if err := decodeBody(w, r, &input, models.MsgPostFieldsRequired); err != nil {
		sendError(w, r, classify(err, MsgPostUpdateFailed))
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), id, input)
	if err != nil {
		sendError(w, r, classify(err, MsgPostUpdateFailed))
		return
	}
	sendJSON(w, r, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendError(w, r, notFound(MsgPostNotFound))
		return
	}

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		sendError(w, r, classify(err, MsgPostRemoveFailed))
		return
	}
	w.Header().Del("Content-Type")
	w.WriteHeader(http.StatusNoContent)
}
