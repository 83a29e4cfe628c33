// Command seed wipes the blog tables and fills them with a small demo data set.
package main

import (
	"context"
	"log"

	"blogHub/internal/auth"
	"blogHub/internal/config"
	"blogHub/internal/database"
	"blogHub/internal/models"
	"blogHub/internal/repository"
	"blogHub/internal/service"
)

type seedUser struct {
	req      service.RegisterRequest
	role     string
	bio      string
	location string
}

var seedUsers = []seedUser{
	{service.RegisterRequest{Username: "admin", Email: "admin@blog.com", Password: "admin123"}, models.RoleAdmin,
		"Administrator of the blog platform. Passionate about technology and writing.", "San Francisco, CA"},
	{service.RegisterRequest{Username: "johndoe", Email: "john@example.com", Password: "password123"}, models.RoleUser,
		"Full-stack developer passionate about modern web technologies.", "New York, NY"},
	{service.RegisterRequest{Username: "sarah_writer", Email: "sarah@example.com", Password: "password123"}, models.RoleUser,
		"Technical writer and UI/UX designer.", "Austin, TX"},
	{service.RegisterRequest{Username: "tech_guru", Email: "guru@example.com", Password: "password123"}, models.RoleUser,
		"Senior software engineer with 10+ years of backend experience.", "Seattle, WA"},
}

type seedPost struct {
	author int
	input  service.PostInput
}

var seedPosts = []seedPost{
	{1, service.PostInput{
		Title:   "Getting Started with Go Interfaces",
		Excerpt: "How small interfaces keep Go packages decoupled and easy to test.",
		Content: "<h2>Why interfaces?</h2><p>Interfaces in Go are satisfied implicitly. Define them where they are consumed and keep them small.</p><p>Accept interfaces, return structs.</p>",
		Tags:    []string{"go", "design", "backend"},
	}},
	{3, service.PostInput{
		Title:   "Building Scalable HTTP Services",
		Excerpt: "Connection pools, timeouts and graceful shutdown.",
		Content: "<p>A service that scales starts with sane defaults: bounded pools, request timeouts and a clean shutdown path.</p>",
		Tags:    []string{"backend", "scalability", "performance"},
	}},
	{2, service.PostInput{
		Title:   "Modern CSS Grid Layouts",
		Format:  "markdown",
		Content: "## Grid basics\n\nCSS Grid handles **two-dimensional** layouts.\n\n- define tracks\n- place items\n",
		Tags:    []string{"css", "grid", "frontend"},
	}},
	{3, service.PostInput{
		Title:   "Database Design Principles",
		Excerpt: "Normalisation, indexes and the trade-offs between them.",
		Content: "<p>Good schemas start from the queries you need to answer. Normalise first, denormalise with intent.</p>",
		Tags:    []string{"database", "sql", "design"},
	}},
}

func main() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.CloseDB()

	if _, err := db.ExecContext(ctx, `TRUNCATE images, comments, posts, users`); err != nil {
		log.Fatalf("Failed to clear tables: %v", err)
	}
	log.Println("Cleared existing data")

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, nil)

	actors := make([]*auth.Actor, 0, len(seedUsers))
	for _, u := range seedUsers {
		result, err := services.Auth.Register(ctx, u.req)
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", u.req.Username, err)
		}
		if u.role != models.RoleUser {
			if err := repo.Users.UpdateRole(ctx, result.User.UserID, u.role); err != nil {
				log.Fatalf("Failed to set role of %s: %v", u.req.Username, err)
			}
			result.User.Role = u.role
		}

		actor := auth.ActorFromUser(result.User)
		bio, location := u.bio, u.location
		if _, err := services.User.UpdateProfile(ctx, actor, service.ProfileUpdate{Bio: &bio, Location: &location}); err != nil {
			log.Fatalf("Failed to update profile of %s: %v", u.req.Username, err)
		}
		actors = append(actors, actor)
	}
	log.Printf("Created %d users", len(actors))

	posts := make([]*models.Post, 0, len(seedPosts))
	for _, p := range seedPosts {
		post, err := services.Post.Create(ctx, actors[p.author], p.input)
		if err != nil {
			log.Fatalf("Failed to create post %q: %v", p.input.Title, err)
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	comments := []struct {
		author, post int
		text         string
	}{
		{0, 0, "Great article! This really helped me understand interfaces better."},
		{2, 0, "The small-interface advice was particularly helpful."},
		{1, 1, "Excellent guide. The shutdown section was very insightful."},
		{3, 2, "CSS Grid has been a game-changer for my layouts."},
		{0, 3, "Database design is often overlooked. This covers the fundamentals."},
	}
	for _, c := range comments {
		comment, err := services.Comment.Create(ctx, actors[c.author], service.CommentInput{Content: c.text, PostID: posts[c.post].PostID})
		if err != nil {
			log.Fatalf("Failed to create comment: %v", err)
		}
		if c.post == 0 && c.author == 0 {
			parentID := comment.CommentID
			if _, err := services.Comment.Create(ctx, actors[1], service.CommentInput{
				Content: "Glad it helped!", PostID: posts[0].PostID, ParentID: &parentID,
			}); err != nil {
				log.Fatalf("Failed to create reply: %v", err)
			}
		}
	}
	log.Println("Created comments")

	likes := map[int][]int{0: {0, 2}, 1: {1, 2, 3}}
	for post, likers := range likes {
		for _, user := range likers {
			if _, err := services.Post.ToggleLike(ctx, actors[user], posts[post].PostID); err != nil {
				log.Fatalf("Failed to like post: %v", err)
			}
		}
	}

	bookmarks := map[int][]int{0: {1, 2}, 1: {0}}
	for user, marked := range bookmarks {
		for _, post := range marked {
			if _, err := services.Post.ToggleBookmark(ctx, actors[user], posts[post].PostID); err != nil {
				log.Fatalf("Failed to bookmark post: %v", err)
			}
		}
	}

	if _, err := services.User.ToggleFollow(ctx, actors[1], actors[3].UserID); err != nil {
		log.Fatalf("Failed to follow user: %v", err)
	}

	log.Println("Seed data created")
	log.Println("Admin: admin@blog.com / admin123")
	log.Println("User: john@example.com / password123")
}
