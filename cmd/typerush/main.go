// Package main provides the CLI entrypoint for typerush.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dpratama/typerush/internal/boardui"
	"github.com/dpratama/typerush/internal/config"
	"github.com/dpratama/typerush/internal/engine"
	"github.com/dpratama/typerush/internal/model"
	"github.com/dpratama/typerush/internal/stats"
	"github.com/dpratama/typerush/internal/store"
	"github.com/dpratama/typerush/internal/tui"
	"github.com/dpratama/typerush/internal/wordlist"
)

const (
	defaultLang       = "en"
	defaultTime       = 30
	defaultWindow     = 10
	minWordsForCustom = 10
)

var timeModes = []int{15, 30, 60}

var (
	playLang  string
	playTime  int
	playWords int
	playUser  string

	boardTime   int
	boardLang   string
	boardSearch string

	historyLang   string
	historyWindow int
	historyUser   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typerush",
		Short:         "Terminal typing-speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playLang, "lang", defaultLang, "language code (default: en)")
	rootCmd.Flags().IntVar(&playTime, "time", defaultTime, "game length in seconds (15, 30 or 60)")
	rootCmd.Flags().IntVar(&playWords, "words", engine.DefaultBatchSize, "words per batch")
	rootCmd.Flags().StringVar(&playUser, "user", "", "play as a registered user (scores are saved)")

	rootCmd.AddCommand(newCustomCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &playLang, fileCfg.Play.Lang)
	applyIntConfig(cmd, "time", &playTime, fileCfg.Play.TimeMode)
	applyIntConfig(cmd, "words", &playWords, fileCfg.Play.Words)
	applyStringConfig(cmd, "user", &playUser, fileCfg.Play.User)

	cfg := model.Config{
		Lang:      playLang,
		TimeMode:  playTime,
		BatchSize: playWords,
		User:      playUser,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	pool, err := wordlist.Load(cfg.Lang, config.DefaultWordListPath(cfg.Lang))
	if err != nil {
		return wordListLoadError(cfg.Lang, err)
	}
	pool = wordlist.LimitPool(pool)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	user := model.User{}
	if cfg.User != "" {
		user, err = loginUser(st, cfg.User)
		if err != nil {
			return err
		}
	}

	handler := engine.DiscardOutcome
	if !user.Guest() {
		handler = saveOutcome(st)
	} else {
		logErrln("Playing as guest; score will not be saved. Use --user to save scores.")
	}

	session := engine.NewSession(
		engine.WithJudge(engine.StrictSpaceJudge),
		engine.WithOutcomeHandler(handler),
		engine.WithResultContext(cfg.TimeMode, langName(cfg.Lang), user.ID),
	)
	supplier := engine.NewShuffleSupplier(pool, cfg.BatchSize)
	timeLimit := time.Duration(cfg.TimeMode) * time.Second

	m := tui.NewModel(session, supplier, timeLimit, user.Guest())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// saveOutcome persists finished games through the store.
func saveOutcome(st *store.Store) engine.OutcomeHandler {
	return func(ctx context.Context, out engine.Outcome) error {
		_, err := st.AddScore(ctx, out.UserID, model.Score{
			NetWPM:        out.NetWPM,
			GrossWPM:      out.GrossWPM,
			Accuracy:      out.Accuracy,
			WeightedScore: out.WeightedScore,
			TimeMode:      out.TimeMode,
			Language:      out.Language,
		})
		return err
	}
}

func newCustomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "custom [file]",
		Short: "Practice on your own text (never scored)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCustomCmd,
	}
}

func runCustomCmd(_ *cobra.Command, args []string) error {
	var text []byte
	var err error
	if len(args) == 1 {
		text, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no text given: pass a file or pipe text on stdin")
		}
		text, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	words := wordlist.SplitWords(string(text))
	if len(words) < minWordsForCustom {
		return fmt.Errorf("custom text needs at least %d words, got %d", minWordsForCustom, len(words))
	}

	session := engine.NewSession(
		engine.WithJudge(engine.LenientJudge),
		engine.WithOutcomeHandler(engine.DiscardOutcome),
	)
	supplier := engine.NewSequentialSupplier(words, engine.DefaultBatchSize)

	m := tui.NewModel(session, supplier, 0, true)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Browse the leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().IntVar(&boardTime, "time", defaultTime, "time mode to show (15, 30 or 60)")
	cmd.Flags().StringVar(&boardLang, "lang", "", "language filter (en, id; empty for all)")
	cmd.Flags().StringVar(&boardSearch, "search", "", "filter by player name")
	return cmd
}

func runLeaderboardCmd(_ *cobra.Command, _ []string) error {
	if !validTimeMode(boardTime) {
		return timeModeError(boardTime)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	filter := model.BoardFilter{
		TimeMode:   boardTime,
		Language:   "All",
		NameSearch: boardSearch,
	}
	if boardLang != "" {
		filter.Language = langName(boardLang)
	}

	m := boardui.NewModel(st, filter)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run leaderboard TUI: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your score history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyUser, "user", "", "registered user name")
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter (en, id; empty for all)")
	cmd.Flags().IntVar(&historyWindow, "window", defaultWindow, "moving average window for the trend line")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &historyUser, fileCfg.Play.User)
	if historyUser == "" {
		return fmt.Errorf("--user is required (guest games are not recorded)")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	user, err := loginUser(st, historyUser)
	if err != nil {
		return err
	}

	language := ""
	if historyLang != "" {
		language = langName(historyLang)
	}
	scores, err := st.History(context.Background(), user.ID, language)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), scores, historyWindow)
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new user",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegisterCmd,
	}
}

func runRegisterCmd(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	if _, err := st.RegisterUser(context.Background(), username, password); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Play with: typerush --user %s\n", username, username)
	return nil
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage your account",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rename <username> <new-username>",
		Short: "Change username and optionally the password",
		Args:  cobra.ExactArgs(2),
		RunE:  runUserRenameCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user and all their scores",
		Args:  cobra.ExactArgs(1),
		RunE:  runUserDeleteCmd,
	})
	return cmd
}

func runUserRenameCmd(cmd *cobra.Command, args []string) error {
	newName := strings.TrimSpace(args[1])
	if newName == "" {
		return fmt.Errorf("new username must not be empty")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	user, err := loginUser(st, args[0])
	if err != nil {
		return err
	}
	newPassword, err := promptPassword("New password (empty to keep current): ")
	if err != nil {
		return err
	}
	if err := st.RenameUser(context.Background(), user.ID, newName, newPassword); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s -> %s\n", user.Username, newName)
	return nil
}

func runUserDeleteCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	user, err := loginUser(st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteUser(context.Background(), user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s and all their scores\n", user.Username)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := wordlist.Langs(config.DefaultWordListDir())
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// loginUser authenticates an existing user with a password prompt.
func loginUser(st *store.Store, username string) (model.User, error) {
	password, err := promptPassword(fmt.Sprintf("Password for %s: ", username))
	if err != nil {
		return model.User{}, err
	}
	user, err := st.Authenticate(context.Background(), username, password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to log in: %w", err)
	}
	return user, nil
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password prompt needs a terminal")
	}
	logErrf("%s", prompt)
	raw, err := term.ReadPassword(fd)
	logErrln()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateConfig(cfg model.Config) error {
	if !validTimeMode(cfg.TimeMode) {
		return timeModeError(cfg.TimeMode)
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	return nil
}

func validTimeMode(mode int) bool {
	for _, m := range timeModes {
		if m == mode {
			return true
		}
	}
	return false
}

func timeModeError(mode int) error {
	return fmt.Errorf("invalid time mode %d: must be 15, 30 or 60", mode)
}

// langName maps a word list code to the name scores are recorded under.
func langName(code string) string {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en":
		return "English"
	case "id":
		return "Indonesia"
	default:
		return code
	}
}

func wordListLoadError(lang string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("language %q not found", lang),
		"Run: typerush langs",
		fmt.Sprintf("Add your own: put a word list at %s", config.DefaultWordListPath(lang)),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typerush configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# lang = "en"    # Language code (default %q)
# time = %d      # Game length in seconds (15, 30 or 60)
# words = %d     # Words per batch
# user = ""      # Play as this user by default
`,
		defaultLang,
		defaultTime,
		engine.DefaultBatchSize,
	)
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
