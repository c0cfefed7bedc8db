package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	pgRepo "github.com/yourusername/trivia-catalog/internal/repository/postgres"
	"github.com/yourusername/trivia-catalog/pkg/database"
)

type seedQuestion struct {
	category   string
	question   string
	answer     string
	difficulty int
}

var seedCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

var seedQuestions = []seedQuestion{
	{"History", "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", "Maya Angelou", 2},
	{"Entertainment", "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", "Apollo 13", 4},
	{"Entertainment", "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", "Tom Cruise", 4},
	{"History", "What boxer's original name is Cassius Clay?", "Muhammad Ali", 1},
	{"Entertainment", "What was the title of the 1990 fantasy directed by Tim Burton about a young man with multi-bladed appendages?", "Edward Scissorhands", 3},
	{"History", "Which dung beetle was worshipped by the ancient Egyptians?", "Scarab", 4},
	{"Sports", "Which is the only team to play in every soccer World Cup tournament?", "Brazil", 3},
	{"Sports", "Which country won the first ever soccer World Cup in 1930?", "Uruguay", 4},
	{"History", "Who invented Peanut Butter?", "George Washington Carver", 2},
	{"Geography", "What is the largest lake in Africa?", "Lake Victoria", 2},
	{"Geography", "In which royal palace would you find the Hall of Mirrors?", "The Palace of Versailles", 3},
	{"Geography", "The Taj Mahal is located in which Indian city?", "Agra", 2},
	{"Art", "Which Dutch graphic artist, initials M C, was a creator of optical illusions?", "Escher", 1},
	{"Art", "La Giaconda is better known as what?", "Mona Lisa", 3},
	{"Art", "How many paintings did Van Gogh sell in his lifetime?", "One", 4},
	{"Art", "Which American artist was a pioneer of Abstract Expressionism, and a leading exponent of action painting?", "Jackson Pollock", 2},
	{"Science", "What is the heaviest organ in the human body?", "The Liver", 4},
	{"Science", "Who discovered penicillin?", "Alexander Fleming", 3},
	{"Science", "Hematology is a branch of medicine involving the study of what?", "Blood", 4},
	{"History", "Which Roman emperor made Christianity the official religion?", "Theodosius I", 3},
}

func newSeedCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "load the sample catalog into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
				return err
			}

			created, err := seedCatalog(cmd.Context(), pgRepo.NewCategoryRepo(db), pgRepo.NewQuestionRepo(db), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d questions\n", created)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even if categories already exist")
	return cmd
}

// seedCatalog создает категории и вопросы примера.
// Если категории уже есть и force не задан, ничего не делает.
func seedCatalog(ctx context.Context, categories repository.CategoryRepository, questions repository.QuestionRepository, force bool) (int, error) {
	existing, err := categories.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 && !force {
		log.Printf("[Seed] В базе уже %d категорий, пропуск (используйте --force)", len(existing))
		return 0, nil
	}

	ids := make(map[string]uint, len(existing))
	for _, c := range existing {
		ids[c.Type] = c.ID
	}
	for _, name := range seedCategories {
		if _, ok := ids[name]; ok {
			continue
		}
		category := &entity.Category{Type: name}
		if err := categories.Create(ctx, category); err != nil {
			return 0, fmt.Errorf("failed to create category %q: %w", name, err)
		}
		ids[name] = category.ID
	}

	created := 0
	for _, sq := range seedQuestions {
		q := &entity.Question{
			Question:   sq.question,
			Answer:     sq.answer,
			Difficulty: sq.difficulty,
			Category:   ids[sq.category],
		}
		if err := questions.Create(ctx, q); err != nil {
			return created, fmt.Errorf("failed to create question %q: %w", sq.question, err)
		}
		created++
	}
	log.Printf("[Seed] Создано категорий: %d, вопросов: %d", len(seedCategories), created)
	return created, nil
}
