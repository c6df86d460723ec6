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

type LikeController struct {
	likeService *service.LikeService
}

func NewLikeController(likeService *service.LikeService) *LikeController {
	return &LikeController{likeService: likeService}
}

func (c *LikeController) Like(ctx echo.Context) error {
	postID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	if err = c.likeService.Like(ctx.Request().Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyLiked):
			return ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: "post already liked"})
		case errors.Is(err, service.ErrNotFound):
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "post not found"})
		}
		logrus.WithError(err).WithField("post_id", postID).Error("Like failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "post liked"})
}

func (c *LikeController) Unlike(ctx echo.Context) error {
	postID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	if err = c.likeService.Unlike(ctx.Request().Context(), userID, postID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "like not found"})
		}
		logrus.WithError(err).WithField("post_id", postID).Error("Unlike failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "like removed"})
}

func (c *LikeController) ListByPost(ctx echo.Context) error {
	postID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	page := types.PageFromContext(ctx)

	likes, err := c.likeService.ListByPost(ctx.Request().Context(), postID, page)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "post not found"})
		}
		logrus.WithError(err).WithField("post_id", postID).Error("List likes failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	items := make([]map[string]uint64, 0, len(likes))
	for _, like := range likes {
		items = append(items, map[string]uint64{"user_id": like.UserID})
	}
	return ctx.JSON(http.StatusOK, dto.PageResponse{Items: items, Page: page})
}
