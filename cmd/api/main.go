package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"postfeed/internal/config"
	"postfeed/internal/database"
	"postfeed/internal/domain/asset"
	"postfeed/internal/domain/auth"
	"postfeed/internal/domain/comment"
	"postfeed/internal/domain/favorite"
	"postfeed/internal/domain/post"
	"postfeed/internal/middleware"
	jwtsvc "postfeed/internal/pkg/jwt"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using the process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&auth.User{}, &post.Post{}, &favorite.Favorite{}, &comment.Comment{}); err != nil {
		log.Fatal(err)
	}

	userRepo := auth.NewUserRepository(db)
	contentRepo := post.NewContentRepository(db)
	favoriteRepo := favorite.NewRepository(db)
	commentRepo := comment.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)
	assets := asset.NewDiskStore(cfg.UploadsDir, "posts", cfg.StaticBase)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	postService := post.NewService(contentRepo, favoriteRepo, assets, commentRepo)
	postHandler := post.NewHandler(postService)

	commentService := comment.NewService(commentRepo, postService)
	commentHandler := comment.NewHandler(commentService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(cfg.StaticBase, cfg.UploadsDir)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			postHandler.RegisterRoutes(protected)
			commentHandler.RegisterRoutes(protected)
		}
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
