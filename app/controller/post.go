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

type PostController struct {
	postService *service.PostService
}

func NewPostController(postService *service.PostService) *PostController {
	return &PostController{postService: postService}
}

func (c *PostController) Create(ctx echo.Context) error {
	req, err := types.NewPostRequestFromContext(ctx)
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

	post, err := c.postService.Create(ctx.Request().Context(), userID, req.Content)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create post failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusCreated, dto.NewPostResponse(post))
}

func (c *PostController) Get(ctx echo.Context) error {
	id, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	post, err := c.postService.Get(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "post not found"})
		}
		logrus.WithError(err).WithField("post_id", id).Error("Get post failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewPostResponse(post))
}

func (c *PostController) List(ctx echo.Context) error {
	page := types.PageFromContext(ctx)

	posts, err := c.postService.List(ctx.Request().Context(), page)
	if err != nil {
		logrus.WithError(err).Error("List posts failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	items := make([]*dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, dto.NewPostResponse(post))
	}
	return ctx.JSON(http.StatusOK, dto.PageResponse{Items: items, Page: page})
}

func (c *PostController) Update(ctx echo.Context) error {
	id, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	req, err := types.NewPostRequestFromContext(ctx)
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

	post, err := c.postService.Update(ctx.Request().Context(), userID, id, req.Content)
	if err != nil {
		return postErrorResponse(ctx, err, id, "Update post failed")
	}

	return ctx.JSON(http.StatusOK, dto.NewPostResponse(post))
}

func (c *PostController) Delete(ctx echo.Context) error {
	id, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	if err = c.postService.Delete(ctx.Request().Context(), userID, id); err != nil {
		return postErrorResponse(ctx, err, id, "Delete post failed")
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "post deleted"})
}

func postErrorResponse(ctx echo.Context, err error, postID uint64, logMessage string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "post not found"})
	case errors.Is(err, service.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "you do not own this resource"})
	}
	logrus.WithError(err).WithField("post_id", postID).Error(logMessage)
	return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}
