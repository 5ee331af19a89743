// Seeds a local database with demo users, posts and favorites.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"postfeed/internal/database"
	"postfeed/internal/domain/auth"
	"postfeed/internal/domain/comment"
	"postfeed/internal/domain/favorite"
	"postfeed/internal/domain/post"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "postfeed.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&auth.User{}, &post.Post{}, &favorite.Favorite{}, &comment.Comment{}); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := auth.NewUserRepository(db)
	posts := post.NewContentRepository(db)
	favorites := favorite.NewRepository(db)
	comments := comment.NewRepository(db)

	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)

	alice := &auth.User{Name: "Alice", Email: "alice@example.com", PasswordHash: string(hash)}
	bob := &auth.User{Name: "Bob", Email: "bob@example.com", PasswordHash: string(hash)}
	for _, u := range []*auth.User{alice, bob} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("seed user %s: %v", u.Email, err)
		}
	}

	demoPosts := []post.Post{
		{Title: "Hello, feed", Body: "First post on the demo feed.", AuthorID: alice.ID, AuthorName: alice.Name},
		{Title: "Morning coffee", Body: "Nothing beats the first cup.", AuthorID: bob.ID, AuthorName: bob.Name},
		{Title: "Weekend plans", Body: "Hiking, probably. Weather permitting.", AuthorID: alice.ID, AuthorName: alice.Name},
	}
	for i := range demoPosts {
		demoPosts[i].CreatedAt = time.Now().UTC().Add(time.Duration(i-len(demoPosts)) * time.Hour)
		if err := posts.Insert(ctx, &demoPosts[i]); err != nil {
			log.Fatalf("seed post %q: %v", demoPosts[i].Title, err)
		}
	}

	if err := favorites.Insert(ctx, demoPosts[0].ID, bob.ID); err != nil {
		log.Fatalf("seed favorite: %v", err)
	}

	welcome := &comment.Comment{
		PostID:     demoPosts[0].ID,
		AuthorID:   bob.ID,
		AuthorName: bob.Name,
		Body:       "Welcome aboard!",
	}
	if err := comments.Insert(ctx, welcome); err != nil {
		log.Fatalf("seed comment: %v", err)
	}

	log.Printf("Seeded %d users, %d posts, 1 favorite, 1 comment", 2, len(demoPosts))
}
