package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index lists the comments of a post.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendError(w, r, notFound(MsgPostNotFound))
		return
	}

	comments, err := cc.commentService.ListPostComments(r.Context(), id)
	if err != nil {
		sendError(w, r, classify(err, MsgCommentsListFailed))
		return
	}
	sendJSON(w, r, http.StatusOK, comments)
}

// Create adds a comment to a post.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendError(w, r, notFound(MsgPostNotFound))
		return
	}

	var input models.CommentInput
	if err := decodeBody(w, r, &input, models.MsgCommentTextRequired); err != nil {
		sendError(w, r, classify(err, MsgCommentSaveFailed))
		return
	}

	comment, err := cc.commentService.CreateComment(r.Context(), id, input)
	if err != nil {
		sendError(w, r, classify(err, MsgCommentSaveFailed))
		return
	}
	sendJSON(w, r, http.StatusCreated, comment)
}
