package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
	grooveerrors "github.com/tessro/groove/internal/errors"
	"github.com/tessro/groove/internal/recommend"
	"github.com/tessro/groove/internal/wizard"
)

var (
	listGenre string
	listYear  int
	listQuery string
	listLiked bool

	recommendCount int

	scanOutput string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracks in the catalog",
	Long: `List the tracks in the catalog, optionally filtered.

Examples:
  groove list                  # Every track
  groove list --genre Rock     # Tracks in one genre
  groove list --year 1977      # Tracks from one year
  groove list -q "blue"        # Title, artist or album contains "blue"
  groove list --liked          # Liked tracks`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genres in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runGenres,
}

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List the release years in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runYears,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [track-id]",
	Short: "Suggest tracks related to a track",
	Long: `Suggest tracks similar to the given one. Tracks in the same genre
come first, topped up with random picks from the rest of the catalog.

Without a track ID an interactive search is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Build a catalog from a music directory",
	Long: `Walk a directory for .mp3 and .wav files and write a catalog from
their tags. Files without tags are named after their path.

Examples:
  groove scan ~/Music
  groove scan ~/Music -o ~/music.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	listCmd.Flags().StringVarP(&listGenre, "genre", "g", "", "only tracks in this genre")
	listCmd.Flags().IntVarP(&listYear, "year", "y", 0, "only tracks from this year")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "match title, artist or album")
	listCmd.Flags().BoolVar(&listLiked, "liked", false, "only liked tracks")
	recommendCmd.Flags().IntVarP(&recommendCount, "count", "n", recommend.DefaultCount, "number of suggestions")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "catalog file to write (default: <dir>/groove.toml)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(yearsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(scanCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	tracks := cat.Search(catalog.Filter{Query: listQuery, Genre: listGenre, Year: listYear})
	if listLiked {
		liked := tracks[:0]
		for _, t := range tracks {
			if t.Liked {
				liked = append(liked, t)
			}
		}
		tracks = liked
	}
	return printTracks(tracks)
}

func runGenres(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	genres := cat.Genres()
	if JSONOutput() {
		return printJSON(genres)
	}
	table := NewTable("GENRE", "TRACKS")
	for _, g := range genres {
		table.Row(g, strconv.Itoa(len(cat.ByGenre(g))))
	}
	table.Flush()
	return nil
}

func runYears(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	years := cat.Years()
	if JSONOutput() {
		return printJSON(years)
	}
	for _, y := range years {
		fmt.Println(y)
	}
	return nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	base, err := resolveTrack(cat, args)
	if err != nil || base == nil {
		return err
	}

	tracks := recommend.New(cat).Recommend(base, recommendCount)
	if !JSONOutput() {
		fmt.Printf("Because you like %s by %s:\n\n", base.Title, base.Artist)
	}
	return printTracks(tracks)
}

// resolveTrack reads a track ID from args, or asks for one with the
// search wizard. It returns nil without error when the user cancels.
func resolveTrack(cat *catalog.Catalog, args []string) (*core.Track, error) {
	if !wizard.NeedsTrack(args) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid track ID %q", args[0])
		}
		t := cat.ByID(id)
		if t == nil {
			return nil, fmt.Errorf("%w: %d", grooveerrors.ErrTrackNotFound, id)
		}
		return t, nil
	}

	interactive := wizard.NewInteractive()
	interactive.SetEnabled(!JSONOutput())
	interactive.SetSearchFunc(wizard.CatalogSearch(cat))
	if !interactive.CanInteract() {
		return nil, fmt.Errorf("a track ID is required")
	}
	result, err := interactive.PromptSearch()
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return cat.ByID(result.ID), nil
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := args[0]
	out := scanOutput
	if out == "" {
		out = filepath.Join(dir, "groove.toml")
	}

	result := catalog.Scan(dir)
	if result.HasErrors() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", result.ErrorSummary())
	}
	if len(result.Data.Tracks) == 0 {
		return fmt.Errorf("%w: no playable files found in %s", grooveerrors.ErrInvalidCatalog, dir)
	}

	if err := catalog.WriteFeed(out, result.Data); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]any{
			"status": "scanned",
			"path":   out,
			"tracks": len(result.Data.Tracks),
			"errors": len(result.Errors),
		})
	}
	fmt.Printf("Wrote %d tracks to %s\n", len(result.Data.Tracks), out)
	fmt.Printf("\nUse it with: groove config set catalog.path %s\n", out)
	return nil
}
