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

type FollowController struct {
	followService *service.FollowService
}

func NewFollowController(followService *service.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

func (c *FollowController) Follow(ctx echo.Context) error {
	followeeID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	if err = c.followService.Follow(ctx.Request().Context(), userID, followeeID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "cannot follow yourself"})
		case errors.Is(err, service.ErrAlreadyFollowing):
			return ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: "already following this user"})
		case errors.Is(err, service.ErrNotFound):
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("followee_id", followeeID).Error("Follow failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "now following"})
}

func (c *FollowController) Unfollow(ctx echo.Context) error {
	followeeID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	if err = c.followService.Unfollow(ctx.Request().Context(), userID, followeeID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "follow not found"})
		}
		logrus.WithError(err).WithField("followee_id", followeeID).Error("Unfollow failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "unfollowed"})
}

func (c *FollowController) ListFollowers(ctx echo.Context) error {
	userID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	page := types.PageFromContext(ctx)

	follows, err := c.followService.ListFollowers(ctx.Request().Context(), userID, page)
	if err != nil {
		return followListErrorResponse(ctx, err, userID, "List followers failed")
	}

	items := make([]map[string]uint64, 0, len(follows))
	for _, follow := range follows {
		items = append(items, map[string]uint64{"user_id": follow.FollowerID})
	}
	return ctx.JSON(http.StatusOK, dto.PageResponse{Items: items, Page: page})
}

func (c *FollowController) ListFollowing(ctx echo.Context) error {
	userID, err := types.IDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	page := types.PageFromContext(ctx)

	follows, err := c.followService.ListFollowing(ctx.Request().Context(), userID, page)
	if err != nil {
		return followListErrorResponse(ctx, err, userID, "List following failed")
	}

	items := make([]map[string]uint64, 0, len(follows))
	for _, follow := range follows {
		items = append(items, map[string]uint64{"user_id": follow.FolloweeID})
	}
	return ctx.JSON(http.StatusOK, dto.PageResponse{Items: items, Page: page})
}

func followListErrorResponse(ctx echo.Context, err error, userID uint64, logMessage string) error {
	if errors.Is(err, service.ErrUserNotFound) {
		return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
	}
	logrus.WithError(err).WithField("user_id", userID).Error(logMessage)
	return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}
