package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tessro/groove/internal/catalog"
	grooveerrors "github.com/tessro/groove/internal/errors"
	"github.com/tessro/groove/internal/wizard"
)

var playlistYes bool

var playlistCmd = &cobra.Command{
	Use:     "playlist",
	Aliases: []string{"pl"},
	Short:   "Manage playlists",
	Long: `View and edit playlists.

"all" and "liked" are built in and always present. Other playlists are
stored in the catalog file and can be changed.`,
	RunE: runPlaylistList,
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists",
	Args:  cobra.NoArgs,
	RunE:  runPlaylistList,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <playlist-id>",
	Short: "Show the tracks of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistShow,
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an empty playlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylistCreate,
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename <playlist-id> <name>",
	Short: "Rename a playlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaylistRename,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete [playlist-id]",
	Short: "Delete a playlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylistDelete,
}

var playlistAddCmd = &cobra.Command{
	Use:   "add [playlist-id] <track-id>",
	Short: "Add a track to a playlist",
	Long: `Append a track to a playlist. A track already in the playlist is
left where it is.

With only a track ID, a playlist picker is shown.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPlaylistAdd,
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-id> <track-id>",
	Short: "Remove a track from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaylistRemove,
}

var likeCmd = &cobra.Command{
	Use:   "like <track-id>",
	Short: "Toggle the liked flag of a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runLike,
}

func init() {
	playlistDeleteCmd.Flags().BoolVarP(&playlistYes, "yes", "y", false, "do not ask for confirmation")

	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistShowCmd)
	playlistCmd.AddCommand(playlistCreateCmd)
	playlistCmd.AddCommand(playlistRenameCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	rootCmd.AddCommand(playlistCmd)
	rootCmd.AddCommand(likeCmd)
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	playlists := cat.Playlists()
	if JSONOutput() {
		return printJSON(playlists)
	}

	table := NewTable("ID", "NAME", "TRACKS", "EDITABLE")
	for _, p := range playlists {
		table.Row(p.ID, p.Name, strconv.Itoa(len(cat.ByIDs(p.TrackIDs))), StatusIcon(p.Editable))
	}
	table.Flush()
	return nil
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	p, err := cat.Playlist(args[0])
	if err != nil {
		return err
	}
	if !JSONOutput() {
		fmt.Printf("%s\n\n", p.Name)
	}
	return printTracks(cat.ByIDs(p.TrackIDs))
}

func runPlaylistCreate(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if !wizard.IsTerminal() {
			return grooveerrors.ErrEmptyName
		}
		var err error
		if name, err = wizard.PromptPlaylistName(); err != nil {
			return err
		}
	}

	return editCatalog(func(cat *catalog.Catalog) (any, string, error) {
		p, err := cat.CreatePlaylist(name)
		if err != nil {
			return nil, "", err
		}
		return p, fmt.Sprintf("Created playlist %s (%s)", p.Name, p.ID), nil
	})
}

func runPlaylistRename(cmd *cobra.Command, args []string) error {
	id, name := args[0], args[1]
	return editCatalog(func(cat *catalog.Catalog) (any, string, error) {
		if err := cat.RenamePlaylist(id, name); err != nil {
			return nil, "", err
		}
		p, err := cat.Playlist(id)
		if err != nil {
			return nil, "", err
		}
		return p, fmt.Sprintf("Renamed %s to %s", id, p.Name), nil
	})
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	return editCatalog(func(cat *catalog.Catalog) (any, string, error) {
		id, err := playlistArg(cat, args)
		if err != nil {
			return nil, "", err
		}
		p, err := cat.Playlist(id)
		if err != nil {
			return nil, "", err
		}
		if !playlistYes && wizard.IsTerminal() && !JSONOutput() {
			ok, err := wizard.Confirm(fmt.Sprintf("Delete playlist %q?", p.Name))
			if err != nil {
				return nil, "", err
			}
			if !ok {
				return nil, "", fmt.Errorf("cancelled")
			}
		}
		if err := cat.DeletePlaylist(id); err != nil {
			return nil, "", err
		}
		return map[string]string{"status": "deleted", "id": id}, fmt.Sprintf("Deleted playlist %s", p.Name), nil
	})
}

func runPlaylistAdd(cmd *cobra.Command, args []string) error {
	return editCatalog(func(cat *catalog.Catalog) (any, string, error) {
		trackID, err := trackIDArg(cat, args[len(args)-1])
		if err != nil {
			return nil, "", err
		}
		id, err := playlistArg(cat, args[:len(args)-1])
		if err != nil {
			return nil, "", err
		}
		if err := cat.AddToPlaylist(id, trackID); err != nil {
			return nil, "", err
		}
		p, err := cat.Playlist(id)
		if err != nil {
			return nil, "", err
		}
		return p, fmt.Sprintf("Added %s to %s", cat.ByID(trackID).Title, p.Name), nil
	})
}

func runPlaylistRemove(cmd *cobra.Command, args []string) error {
	return editCatalog(func(cat *catalog.Catalog) (any, string, error) {
		trackID, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, "", fmt.Errorf("invalid track ID %q", args[1])
		}
		if err := cat.RemoveFromPlaylist(args[0], trackID); err != nil {
			return nil, "", err
		}
		p, err := cat.Playlist(args[0])
		if err != nil {
			return nil, "", err
		}
		return p, fmt.Sprintf("Removed track %d from %s", trackID, p.Name), nil
	})
}

func runLike(cmd *cobra.Command, args []string) error {
	return editCatalog(func(cat *catalog.Catalog) (any, string, error) {
		id, err := trackIDArg(cat, args[0])
		if err != nil {
			return nil, "", err
		}
		liked, _ := cat.ToggleLiked(id)
		t := cat.ByID(id)
		msg := fmt.Sprintf("%s Unliked %s", LikeIcon(false), t.Title)
		if liked {
			msg = fmt.Sprintf("%s Liked %s", LikeIcon(true), t.Title)
		}
		return t, msg, nil
	})
}

// editCatalog loads the catalog, applies fn and saves the result. fn
// returns the value printed with --json and the message printed
// otherwise.
func editCatalog(fn func(cat *catalog.Catalog) (any, string, error)) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	if cfg.Catalog.Path == "" {
		// Fail before prompting for anything.
		return saveCatalog(cat)
	}

	result, msg, err := fn(cat)
	if err != nil {
		return err
	}
	if err := saveCatalog(cat); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(result)
	}
	fmt.Println(msg)
	return nil
}

// playlistArg returns the playlist ID in args, or asks for one.
func playlistArg(cat *catalog.Catalog, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !wizard.IsTerminal() || JSONOutput() {
		return "", fmt.Errorf("a playlist ID is required")
	}
	return wizard.PromptEditablePlaylist(cat.Playlists())
}

func trackIDArg(cat *catalog.Catalog, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid track ID %q", arg)
	}
	if !cat.Contains(id) {
		return 0, fmt.Errorf("%w: %d", grooveerrors.ErrTrackNotFound, id)
	}
	return id, nil
}
