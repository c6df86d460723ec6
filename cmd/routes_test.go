package cmd

import (
	"net/http"
	"testing"

	"github.com/vibast-solutions/ms-go-social/app/controller"
	"github.com/vibast-solutions/ms-go-social/app/middleware"

	"github.com/labstack/echo/v4"
)

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	registerRoutes(e,
		controller.NewAuthController(nil, nil),
		controller.NewPostController(nil),
		controller.NewCommentController(nil),
		controller.NewLikeController(nil),
		controller.NewFollowController(nil),
		middleware.NewAuthMiddleware(nil),
	)

	registered := make(map[string]bool)
	for _, route := range e.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		http.MethodPost + " /auth/signup",
		http.MethodGet + " /auth/activate",
		http.MethodPost + " /auth/login",
		http.MethodPost + " /auth/refresh",
		http.MethodPost + " /auth/logout",
		http.MethodPatch + " /auth/update-password",
		http.MethodPatch + " /auth/update-email",
		http.MethodGet + " /auth/update-email",
		http.MethodGet + " /posts",
		http.MethodPost + " /posts",
		http.MethodGet + " /posts/:id",
		http.MethodPatch + " /posts/:id",
		http.MethodDelete + " /posts/:id",
		http.MethodGet + " /posts/:id/comments",
		http.MethodPost + " /posts/:id/comments",
		http.MethodGet + " /posts/:id/likes",
		http.MethodPost + " /posts/:id/like",
		http.MethodDelete + " /posts/:id/like",
		http.MethodPatch + " /comments/:id",
		http.MethodDelete + " /comments/:id",
		http.MethodGet + " /users/:id/followers",
		http.MethodGet + " /users/:id/following",
		http.MethodPost + " /users/:id/follow",
		http.MethodDelete + " /users/:id/follow",
	}
	for _, route := range expected {
		if !registered[route] {
			t.Fatalf("route not registered: %s", route)
		}
	}

	if registered["POST /auth/update-email"] {
		t.Fatalf("email-change request must be PATCH, found POST registration")
	}
}
