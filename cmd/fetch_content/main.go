// Command fetch_content loads the site content the way the server does at
// boot and prints what made it into the store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"folio_app_echo/internal/config"
	"folio_app_echo/internal/models"
	"folio_app_echo/internal/services"
)

var (
	siteFile   string
	contentDir string
	baseURL    string
	asJSON     bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "fetch_content",
	Short: "Load the portfolio content and report skipped resources",
	Long: `fetch_content reads the site file, fetches every project and blog post it
lists (from a directory or a base URL) and prints a summary of the resulting
content store. Resources that fail to load are reported as warnings.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := config.NewLogger(!verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		site, err := config.LoadSite(siteFile)
		if err != nil {
			return err
		}

		var fetcher services.Fetcher
		if baseURL != "" {
			fetcher = services.NewHTTPFetcher(baseURL)
		} else {
			fetcher = services.NewDirFetcher(os.DirFS(contentDir))
		}

		store := services.NewContentLoader(fetcher, logger).
			LoadAll(cmd.Context(), site.ProjectIDs, site.BlogPostIDs, site.Profile.FullName)

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(store)
		}
		printSummary(cmd, site, store)
		return nil
	},
}

func init() {
	// Load envs so the flags default to the server's settings
	config.LoadEnv()

	rootCmd.Flags().StringVar(&siteFile, "site", envOr("SITE_CONFIG", "config/site.yaml"), "site config file")
	rootCmd.Flags().StringVar(&contentDir, "content-dir", envOr("CONTENT_DIR", "web/content"), "directory holding projects/ and blogs/")
	rootCmd.Flags().StringVar(&baseURL, "base-url", os.Getenv("CONTENT_BASE_URL"), "fetch content over HTTP from this base URL instead")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "print the loaded store as JSON")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printSummary(cmd *cobra.Command, site *config.Site, store *models.ContentStore) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Projects: %d of %d loaded\n", len(store.Projects), len(site.ProjectIDs))
	for _, p := range store.Projects {
		fmt.Fprintf(out, "  %-32s %s\n", p.ID, p.Title)
	}
	fmt.Fprintf(out, "Blog posts: %d of %d loaded\n", len(store.BlogPosts), len(site.BlogPostIDs))
	for _, p := range store.BlogPosts {
		fmt.Fprintf(out, "  %s  %-32s %s (%s)\n", p.PublicationDate.Format("2006-01-02"), p.ID, p.Title, p.Author)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
