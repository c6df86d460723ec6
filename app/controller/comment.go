package controller

import (
	"errors"
	"net/http"

	"github.com/vibast-solutions/ms-go-social/app/dto"
	"github.com/vibast-solutions/ms-go-social/app/middleware"
	"github.com/vibast-solutions/ms-go-social/app/service"
	"github.com/vibast-solutions/ms-go-social/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type CommentController struct {
	commentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

func (c *CommentController) Create(ctx echo.Context) error {
	postID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	req, err := types.NewCommentRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	comment, err := c.commentService.Create(ctx.Request().Context(), userID, postID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "post not found"})
		}
		logrus.WithError(err).WithField("post_id", postID).Error("Create comment failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

func (c *CommentController) ListByPost(ctx echo.Context) error {
	postID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	page := types.PageFromContext(ctx)

	comments, err := c.commentService.ListByPost(ctx.Request().Context(), postID, page)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "post not found"})
		}
		logrus.WithError(err).WithField("post_id", postID).Error("List comments failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	items := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, dto.NewCommentResponse(comment))
	}
	return ctx.JSON(http.StatusOK, dto.PageResponse{Items: items, Page: page})
}

func (c *CommentController) Update(ctx echo.Context) error {
	id, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	req, err := types.NewCommentRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	comment, err := c.commentService.Update(ctx.Request().Context(), userID, id, req.Content)
	if err != nil {
		return commentErrorResponse(ctx, err, id, "Update comment failed")
	}

	return ctx.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

func (c *CommentController) Delete(ctx echo.Context) error {
	id, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	if err = c.commentService.Delete(ctx.Request().Context(), userID, id); err != nil {
		return commentErrorResponse(ctx, err, id, "Delete comment failed")
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "comment deleted"})
}

func commentErrorResponse(ctx echo.Context, err error, commentID uint64, logMessage string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "comment not found"})
	case errors.Is(err, service.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "you do not own this resource"})
	}
	logrus.WithError(err).WithField("comment_id", commentID).Error(logMessage)
	return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}
