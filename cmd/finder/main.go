// Command finder searches and browses recipes from the terminal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/client"
	"github.com/pageza/recipe-finder/backend/internal/discovery"
	"github.com/pageza/recipe-finder/backend/internal/logging"
)

var (
	serviceURL   string
	imagesFile   string
	timeout      time.Duration
	verbose      bool
	noColor      bool
	searchFlag   string
	categoryFlag string
)

var rootCmd = &cobra.Command{
	Use:   "finder",
	Short: "Find recipes from the recipe data service",
	Long: `finder queries the recipe data service and renders recipe cards.

Use "finder search" for a one-shot query or "finder browse" for an
interactive session where every input refines the results. "finder profile"
lists one author's recipes.`,
	SilenceUsage: true,
}

func init() {
	defaultURL := os.Getenv("DATA_SERVICE_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}

	rootCmd.PersistentFlags().StringVar(&serviceURL, "url", defaultURL, "Base URL of the recipe data service")
	rootCmd.PersistentFlags().StringVar(&imagesFile, "images", os.Getenv("IMAGE_DEFAULTS_FILE"), "YAML file overriding category images")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Maximum time to wait for results")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log retrieval activity")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Render cards without colors")

	searchCmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Case-insensitive title search")
	searchCmd.Flags().StringVarP(&categoryFlag, "category", "c", discovery.AllCategories, "Category to show")
	profileCmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Case-insensitive title search")
	profileCmd.Flags().StringVarP(&categoryFlag, "category", "c", discovery.AllCategories, "Category to show")

	rootCmd.AddCommand(searchCmd, browseCmd, profileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newScreen builds a discovery screen over the remote data service. A
// non-empty author scopes it to that user's recipes.
func newScreen(author string) (*discovery.Screen, *zap.Logger, error) {
	logger := zap.NewNop()
	if verbose {
		l, err := logging.New(config.Development)
		if err != nil {
			return nil, nil, err
		}
		logger = l
	}

	images := config.DefaultImageDefaults()
	if imagesFile != "" {
		var err error
		if images, err = config.LoadImageDefaults(imagesFile); err != nil {
			return nil, nil, fmt.Errorf("failed to load image defaults: %w", err)
		}
	}

	rc := client.NewRecipeClient(serviceURL)
	var retriever discovery.Retriever = rc
	if author != "" {
		retriever = rc.ForUser(author)
	}
	return discovery.NewScreen(retriever, discovery.NewNormalizer(images), logger), logger, nil
}
