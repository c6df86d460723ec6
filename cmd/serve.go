package cmd

import (
	"context"
	"database/sql"
	"net"

	"github.com/vibast-solutions/ms-go-social/app/controller"
	"github.com/vibast-solutions/ms-go-social/app/middleware"
	"github.com/vibast-solutions/ms-go-social/app/repository"
	"github.com/vibast-solutions/ms-go-social/app/service"
	"github.com/vibast-solutions/ms-go-social/config"
	"github.com/vibast-solutions/ms-go-social/migrations"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server for the social networking service.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := migrations.Up(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to run database migrations")
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)

	codec := service.NewTokenCodec(cfg)
	mailer := service.NewSMTPMailer(cfg)
	authService := service.NewAuthService(userRepo, codec, mailer, cfg)
	postService := service.NewPostService(postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	likeService := service.NewLikeService(likeRepo, postRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	sweeper := service.NewSweeper(userRepo, cfg.SweepInterval, cfg.UnverifiedMaxAge)
	go sweeper.Run(ctx)

	startHTTPServer(cfg, codec, authService, postService, commentService, likeService, followService)
}

func startHTTPServer(
	cfg *config.Config,
	codec *service.TokenCodec,
	authService service.AuthService,
	postService *service.PostService,
	commentService *service.CommentService,
	likeService *service.LikeService,
	followService *service.FollowService,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authController := controller.NewAuthController(authService, cfg)
	postController := controller.NewPostController(postService)
	commentController := controller.NewCommentController(commentService)
	likeController := controller.NewLikeController(likeService)
	followController := controller.NewFollowController(followService)
	authMiddleware := middleware.NewAuthMiddleware(codec)

	registerRoutes(e, authController, postController, commentController, likeController, followController, authMiddleware)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

func registerRoutes(
	e *echo.Echo,
	authController *controller.AuthController,
	postController *controller.PostController,
	commentController *controller.CommentController,
	likeController *controller.LikeController,
	followController *controller.FollowController,
	authMiddleware *middleware.AuthMiddleware,
) {
	auth := e.Group("/auth")
	auth.POST("/signup", authController.SignUp)
	auth.GET("/activate", authController.Activate)
	auth.POST("/login", authController.LogIn)
	auth.POST("/refresh", authController.Refresh)
	auth.GET("/update-email", authController.ConfirmEmailChange)

	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.RequireAuth)
	authProtected.POST("/logout", authController.LogOut)
	authProtected.PATCH("/update-password", authController.UpdatePassword)
	authProtected.PATCH("/update-email", authController.RequestEmailChange)

	posts := e.Group("/posts")
	posts.GET("", postController.List)
	posts.GET("/:id", postController.Get)
	posts.GET("/:id/comments", commentController.ListByPost)
	posts.GET("/:id/likes", likeController.ListByPost)

	postsProtected := posts.Group("")
	postsProtected.Use(authMiddleware.RequireAuth)
	postsProtected.POST("", postController.Create)
	postsProtected.PATCH("/:id", postController.Update)
	postsProtected.DELETE("/:id", postController.Delete)
	postsProtected.POST("/:id/comments", commentController.Create)
	postsProtected.POST("/:id/like", likeController.Like)
	postsProtected.DELETE("/:id/like", likeController.Unlike)

	comments := e.Group("/comments")
	comments.Use(authMiddleware.RequireAuth)
	comments.PATCH("/:id", commentController.Update)
	comments.DELETE("/:id", commentController.Delete)

	users := e.Group("/users")
	users.GET("/:id/followers", followController.ListFollowers)
	users.GET("/:id/following", followController.ListFollowing)

	usersProtected := users.Group("")
	usersProtected.Use(authMiddleware.RequireAuth)
	usersProtected.POST("/:id/follow", followController.Follow)
	usersProtected.DELETE("/:id/follow", followController.Unfollow)
}
