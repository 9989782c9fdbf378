package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/logging"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// seedRecipe is one entry of a seed file. Exactly one of Steps or Text is used.
type seedRecipe struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	ImageURL    string   `yaml:"image_url"`
	Ingredients []string `yaml:"ingredients"`
	Steps       []string `yaml:"steps"`
	Text        string   `yaml:"text"`
}

func (s seedRecipe) request() *types.CreateRecipeRequest {
	instructions := types.TextInstructions(s.Text)
	if len(s.Steps) > 0 {
		instructions = types.StepInstructions(s.Steps...)
	}
	return &types.CreateRecipeRequest{
		Title:        s.Title,
		Description:  s.Description,
		Category:     s.Category,
		ImageURL:     s.ImageURL,
		Ingredients:  s.Ingredients,
		Instructions: instructions,
	}
}

var defaultRecipes = []seedRecipe{
	{
		Title:       "Margherita Pizza",
		Description: "Thin crust with tomato, mozzarella and basil.",
		Category:    "Italian",
		Ingredients: []string{"pizza dough", "tomato sauce", "mozzarella", "fresh basil", "olive oil"},
		Steps:       []string{"Stretch the dough", "Spread the sauce and add mozzarella", "Bake at 250C for 8 minutes", "Top with basil and olive oil"},
	},
	{
		Title:       "Chicken Tikka Masala",
		Category:    "Indian",
		Ingredients: []string{"chicken thighs", "yogurt", "garam masala", "tomato puree", "cream"},
		Steps:       []string{"Marinate the chicken in yogurt and spices", "Grill until charred", "Simmer in the tomato sauce", "Finish with cream"},
	},
	{
		Title:       "Greek Salad",
		Description: "Crisp vegetables with feta and olives.",
		Category:    "Salad",
		Ingredients: []string{"cucumber", "tomato", "red onion", "feta", "kalamata olives"},
		Text:        "Chop the vegetables, add feta and olives, dress with olive oil and oregano.",
	},
	{
		Title:       "Chocolate Lava Cake",
		Category:    "Dessert",
		Ingredients: []string{"dark chocolate", "butter", "eggs", "sugar", "flour"},
		Steps:       []string{"Melt chocolate with butter", "Whisk in eggs and sugar", "Fold in flour", "Bake for 12 minutes"},
	},
	{
		Title:       "Beef Tacos",
		Description: "Street-style tacos with salsa.",
		Category:    "Mexican",
		Ingredients: []string{"corn tortillas", "ground beef", "onion", "cilantro", "salsa"},
		Text:        "Brown the beef with spices, warm the tortillas, fill and top with onion, cilantro and salsa.",
	},
	{
		Title:       "Vegetable Stir Fry",
		Category:    "Asian",
		Ingredients: []string{"broccoli", "bell pepper", "snap peas", "soy sauce", "ginger", "rice"},
		Steps:       []string{"Cook the rice", "Stir fry vegetables on high heat", "Add soy sauce and ginger", "Serve over rice"},
	},
	{
		Title:       "Shakshuka",
		Description: "Eggs poached in spiced tomato sauce.",
		Category:    "Breakfast",
		Ingredients: []string{"eggs", "tomatoes", "bell pepper", "cumin", "paprika"},
		Steps:       []string{"Saute peppers and spices", "Add tomatoes and simmer", "Crack in the eggs and cover until set"},
	},
}

func main() {
	file := flag.String("file", "", "YAML file with recipes to seed instead of the built-in set")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, *file, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
}

func run(cfg *config.Config, file string, logger *zap.Logger) error {
	recipes := defaultRecipes
	if file != "" {
		var err error
		if recipes, err = loadSeedFile(file); err != nil {
			return err
		}
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	author, err := seedAuthor(ctx, db, cfg.JWTSecret)
	if err != nil {
		return err
	}

	recipeSvc := service.NewRecipeService(db)
	created := 0
	for _, r := range recipes {
		var count int64
		if err := db.WithContext(ctx).Model(&model.Recipe{}).Where("title = ?", r.Title).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check recipe %q: %w", r.Title, err)
		}
		if count > 0 {
			logger.Debug("Recipe already seeded", zap.String("title", r.Title))
			continue
		}

		if _, err := recipeSvc.CreateRecipe(ctx, author.ID, r.request()); err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", r.Title, err)
		}
		created++
	}

	logger.Info("Seeding complete", zap.Int("created", created), zap.Int("total", len(recipes)))
	return nil
}

func loadSeedFile(path string) ([]seedRecipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var recipes []seedRecipe
	if err := yaml.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return recipes, nil
}

// seedAuthor returns the seed user, registering it on first run
func seedAuthor(ctx context.Context, db *gorm.DB, jwtSecret string) (*model.User, error) {
	const email = "kitchen@recipe-finder.local"

	authSvc := service.NewAuthService(db, jwtSecret)
	user, err := authSvc.Register(ctx, &types.RegisterRequest{
		Username: "testkitchen",
		Email:    email,
		Password: "seed-password-not-for-login",
	})
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, service.ErrUserExists) {
		return nil, err
	}

	var existing model.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to load seed author: %w", err)
	}
	return &existing, nil
}
