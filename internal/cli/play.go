package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/session"
	"github.com/tessro/groove/internal/tail"
	"github.com/tessro/groove/internal/wizard"
)

var (
	playPlaylist string
	playQueue    []int
	playShuffle  bool
	playRepeat   string
	playNoKeys   bool
)

const seekStep = 10 * time.Second

var playCmd = &cobra.Command{
	Use:   "play [track-id]",
	Short: "Play tracks and follow along",
	Long: `Play a track, or a playlist, and print what happens as it plays.
Playback continues through the list until it runs out.

Without a track ID or playlist an interactive search is shown.

Keys while playing:
  Space        Play/Pause
  n / p        Next / Previous track
  ← / →        Seek 10s
  + / -        Volume up/down
  l            Like current track
  s            Toggle shuffle
  r            Cycle repeat
  x            Cycle speed
  i            Show position
  q            Quit

Examples:
  groove play 12               # Play track 12, then the rest of the list
  groove play --playlist liked # Play liked tracks from the top
  groove play --playlist       # Pick a playlist
  groove play 3 --queue 7,9    # Play 3, then 7 and 9`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playPlaylist, "playlist", "P", "", "play from this playlist")
	playCmd.Flags().IntSliceVarP(&playQueue, "queue", "Q", nil, "track IDs to play next")
	playCmd.Flags().BoolVar(&playShuffle, "shuffle", false, "enable shuffle mode")
	playCmd.Flags().StringVar(&playRepeat, "repeat", "", "repeat mode (off, all, one)")
	playCmd.Flags().BoolVar(&playNoKeys, "no-keys", false, "do not read keys from the terminal")
	playCmd.Flags().Lookup("playlist").NoOptDefVal = pickPlaylist
	rootCmd.AddCommand(playCmd)
}

// pickPlaylist is the --playlist value used when the flag is given
// without one.
const pickPlaylist = "?"

func runPlay(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	if playPlaylist == pickPlaylist {
		p, err := pickPlaylistInteractive(cat)
		if err != nil || p == nil {
			return err
		}
		playPlaylist = p.ID
	}

	id, err := pickStartTrack(cat, args)
	if err != nil {
		return err
	}
	if id == 0 && playPlaylist == "" {
		return nil
	}

	s, err := openSession(cat)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if playShuffle {
		s.Engine().SetShuffle(true)
	}
	if playRepeat != "" {
		mode, err := core.ParseRepeatMode(playRepeat)
		if err != nil {
			return err
		}
		s.Engine().SetRepeatMode(mode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out io.Writer = os.Stdout
	interactive := false
	fd := int(os.Stdin.Fd())
	if !playNoKeys && !JSONOutput() && term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			log.Debug("raw mode unavailable", zap.Error(err))
		} else {
			defer func() { _ = term.Restore(fd, old) }()
			out = &rawWriter{w: os.Stdout}
			interactive = true
		}
	}

	watcher := tail.NewWatcher(s.State,
		tail.WithVerbose(Verbose()),
		tail.WithBuffer(64),
		tail.WithUntil(func(e tail.Event) bool {
			return playbackDone(e, interactive)
		}),
	)
	s.Subscribe(watcher)

	if playPlaylist != "" {
		err = s.PlayPlaylist(playPlaylist, id)
	} else {
		err = s.PlayFromList(id)
	}
	if err != nil {
		return err
	}
	// --queue tracks go ahead of the rest of the list.
	for i, qid := range playQueue {
		if err := s.Enqueue(qid); err != nil {
			return err
		}
		s.ReorderQueue(len(s.Queue())-1, i)
	}
	if interactive {
		go readKeys(os.Stdin, s, out, cancel)
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!cfg.Tail.Plain),
		tail.WithTimestamp(cfg.Tail.Timestamps),
		tail.WithTemplate(cfg.Tail.Format),
	)
	if err := watcher.Run(ctx, out, formatter); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if n := watcher.Dropped(); n > 0 {
		log.Debug("events dropped", zap.Int64("count", n))
	}
	summary := s.Stats()
	fmt.Fprintf(out, "\n%d plays, %s listened\n", summary.TotalPlays, FormatDuration(summary.ListeningTime))

	if cfg.Catalog.Path != "" {
		if err := saveCatalog(cat); err != nil {
			return err
		}
	}
	return nil
}

// playbackDone reports whether the list has run out. Without keys
// there is no way to skip a track that failed to load, so that ends
// the run too.
func playbackDone(e tail.Event, interactive bool) bool {
	if e.Type == core.EventStateChanged && e.Event.State == core.StateIdle {
		return true
	}
	return !interactive && e.Type == core.EventWarning && !e.State.IsPlaying()
}

// pickStartTrack returns the track to start with. Zero means the
// playlist's first track, or that the user cancelled the search.
func pickStartTrack(cat *catalog.Catalog, args []string) (int, error) {
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("invalid track ID %q", args[0])
		}
		return id, nil
	}
	if playPlaylist != "" {
		return 0, nil
	}

	interactive := wizard.NewInteractive()
	interactive.SetEnabled(!JSONOutput())
	interactive.SetSearchFunc(wizard.CatalogSearch(cat))
	if !interactive.CanInteract() {
		return 0, fmt.Errorf("a track ID or --playlist is required")
	}

	result, err := interactive.PromptSearch()
	if err != nil || result == nil {
		return 0, err
	}
	return result.ID, nil
}

func pickPlaylistInteractive(cat *catalog.Catalog) (*core.Playlist, error) {
	interactive := wizard.NewInteractive()
	interactive.SetEnabled(!JSONOutput())
	interactive.SetPlaylists(cat.Playlists())
	if !interactive.CanInteract() {
		return nil, fmt.Errorf("a playlist ID is required")
	}
	return interactive.PromptPlaylist()
}

// readKeys maps single key presses to player actions until q or
// Ctrl+C is pressed or r fails.
func readKeys(r io.Reader, s *session.Session, out io.Writer, quit func()) {
	defer quit()
	buf := make([]byte, 8)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if !handleKey(s, buf[:n], out) {
			return
		}
	}
}

// handleKey applies one key press. It returns false when the user asks
// to quit.
func handleKey(s *session.Session, key []byte, out io.Writer) bool {
	e := s.Engine()
	switch string(key) {
	case "q", "\x03":
		return false
	case " ":
		s.TogglePlayPause()
	case "n":
		s.Next()
	case "p":
		s.Previous()
	case "\x1b[C":
		e.SeekBy(seekStep)
	case "\x1b[D":
		e.SeekBy(-seekStep)
	case "+", "=":
		e.AdjustVolume(0.1)
	case "-":
		e.AdjustVolume(-0.1)
	case "l":
		s.ToggleLike()
	case "s":
		s.ToggleShuffle()
	case "r":
		s.CycleRepeat()
	case "x":
		s.CycleSpeed()
	case "i":
		_, _ = fmt.Fprintln(out, statusLine(s.State()))
	}
	return true
}

func statusLine(st core.PlaybackState) string {
	if !st.HasTrack() {
		return "Nothing playing"
	}
	icon := "⏸"
	if st.IsPlaying() {
		icon = "▶"
	}
	return fmt.Sprintf("%s %s - %s  %s  %s / %s",
		icon, st.Track.Artist, st.Track.Title,
		FormatProgress(st.Progress, st.Duration, 20),
		FormatDuration(st.Progress),
		FormatDuration(st.Duration),
	)
}

// rawWriter restores carriage returns while the terminal is in raw mode.
type rawWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (r *rawWriter) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fixed := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := r.w.Write(fixed); err != nil {
		return 0, err
	}
	return len(p), nil
}
