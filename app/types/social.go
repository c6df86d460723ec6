package types

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type PostRequest struct {
	Content string `json:"content"`
}

func NewPostRequestFromContext(ctx echo.Context) (*PostRequest, error) {
	var body PostRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *PostRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is required")
	}

	return nil
}

type CommentRequest struct {
	Content string `json:"content"`
}

func NewCommentRequestFromContext(ctx echo.Context) (*CommentRequest, error) {
	var body CommentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is required")
	}

	return nil
}

// PageFromContext reads the page query parameter, clamping to 1.
func PageFromContext(ctx echo.Context) int {
	page, err := strconv.Atoi(ctx.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// IDParam parses a numeric path parameter.
func IDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
