package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"courseforge/internal/config"
	"courseforge/internal/model"
	"courseforge/internal/repository"
)

// Seeds the database with the built-in starter course plus a small sample
// course so a fresh deployment has something to show.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewCourseRepo(client.Database(cfg.MongoDatabase))

	courses := []model.CourseDocument{
		model.DefaultCourse(),
		sampleCourse(),
	}

	for _, course := range courses {
		id, err := repo.Save(ctx, course, "")
		if err != nil {
			log.Fatalf("Failed to seed course %q: %v", course.Title, err)
		}
		fmt.Printf("Seeded course %q as %s\n", course.Title, id)
	}
}

func sampleCourse() model.CourseDocument {
	intro := model.NewNode("Découvrir Go")
	intro.Icon = "🚀"
	intro.Content = []model.ContentBlock{
		{
			ID:    model.NewID(),
			Kind:  model.BlockText,
			Value: "Go est un langage compilé, simple et <b>rapide</b>.",
		},
		{
			ID:      model.NewID(),
			Kind:    model.BlockLink,
			Value:   "https://go.dev/tour/",
			Caption: "Le Tour de Go",
		},
	}

	check := model.NewNode("Vérifiez vos connaissances")
	quiz := model.QuizData{
		Question:      "Quel mot-clé déclare une fonction en Go ?",
		Options:       []string{"func", "def", "fn"},
		CorrectAnswer: 0,
	}
	check.Content = []model.ContentBlock{
		{
			ID:    model.NewID(),
			Kind:  model.BlockQuiz,
			Value: quiz.Encode(),
		},
	}
	intro.Children = []model.CourseNode{check}

	return model.CourseDocument{
		Title:       "Introduction à Go",
		Author:      "Courseforge",
		Description: "Un petit cours d'exemple pour démarrer.",
		Outline:     []model.CourseNode{intro},
	}
}
