package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/mmcdole/reel/internal/backend"
	"github.com/mmcdole/reel/internal/backend/google"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/launcher"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/session"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
	"github.com/mmcdole/reel/internal/viewmodel"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion, ephemeral bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&ephemeral, "ephemeral", false, "keep the session and cache in memory only")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: reel [flags] [login|logout]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(flag.Arg(0), ephemeral); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds everything the commands share
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	sessions *session.Manager
	client   *backend.Client
}

func setup(ephemeral bool) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	logger.Info("starting reel", "version", Version)

	if !cfg.IsConfigured() {
		return nil, errors.New("server.url and server.recommendation_url must be set")
	}

	dir := cfg.Store.Path
	if ephemeral {
		dir = ""
	}
	st, err := store.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	clientID, err := st.InstallationID()
	if err != nil {
		logger.Warn("no installation id", "error", err)
	}

	sessions := session.NewManager(st, logger)
	if sessions.LoggedIn() && sessions.Expired(time.Now()) {
		logger.Info("stored session expired", "username", sessions.Username())
		if err := sessions.Invalidate(); err != nil {
			logger.Warn("failed to clear expired session", "error", err)
		}
	}

	client := backend.NewClient(backend.Config{
		BaseURL:           cfg.Server.URL,
		RecommendationURL: cfg.Server.RecommendationURL,
		Timeout:           cfg.Server.Timeout,
		ClientID:          clientID,
	}, sessions, logger)

	return &app{cfg: cfg, logger: logger, store: st, sessions: sessions, client: client}, nil
}

func run(command string, ephemeral bool) error {
	a, err := setup(ephemeral)
	if err != nil {
		return err
	}
	defer a.store.Close()

	switch command {
	case "":
		return runTUI(a)
	case "login":
		return runLogin(a)
	case "logout":
		return runLogout(a)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runTUI(a *app) error {
	styles.ApplyTheme(a.cfg.UI.Theme)

	opts := []paging.Option{
		paging.WithRollbackOnFailure(a.cfg.Paging.RollbackOnFailure),
		paging.WithLogger(a.logger),
	}

	svc := tui.Services{
		Auth:            viewmodel.NewAuth(a.client, a.sessions, a.logger),
		Home:            viewmodel.NewHome(a.client, opts...),
		Recommendations: viewmodel.NewRecommendations(a.client, a.client, a.sessions, a.logger, opts...),
		Search:          viewmodel.NewSearch(a.client, opts...),
		Category:        viewmodel.NewCategory(a.client, opts...),
		Profile:         viewmodel.NewProfile(a.client, a.sessions, a.logger),
		Details:         viewmodel.NewDetails(a.client, a.client, a.store, a.logger),
		Browser:         launcher.NewLauncher(a.cfg.Browser.Command, a.cfg.Browser.Args, a.logger),
		Google:          google.NewDeviceFlow(a.cfg.Google.ClientID, a.cfg.Google.ClientSecret, oauth2.Endpoint{}, a.logger),
		Sessions:        a.sessions,
	}

	model := tui.NewModel(svc)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

// runLogin signs in from the shell so the TUI starts with a session
func runLogin(a *app) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	auth := viewmodel.NewAuth(a.client, a.sessions, a.logger)
	auth.SetUsername(strings.TrimSpace(input))
	auth.SetPassword(string(password))

	state := withSpinner("Logging in...", func(ctx context.Context) viewmodel.AuthState {
		return auth.Login(ctx)
	})
	if state.Status != viewmodel.LoggedIn {
		return fmt.Errorf("login failed: %s", state.Message)
	}

	fmt.Printf("✓ Logged in as %s\n", a.sessions.Username())
	return nil
}

func runLogout(a *app) error {
	if !a.sessions.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}
	auth := viewmodel.NewAuth(a.client, a.sessions, a.logger)
	withSpinner("Logging out...", func(ctx context.Context) viewmodel.AuthState {
		return auth.Logout(ctx)
	})
	fmt.Println("✓ Logged out")
	return nil
}

// withSpinner runs fn in the background while animating a spinner
func withSpinner(label string, fn func(ctx context.Context) viewmodel.AuthState) viewmodel.AuthState {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resultCh := make(chan viewmodel.AuthState, 1)
	go func() {
		resultCh <- fn(ctx)
	}()

	frame := 0
	fmt.Printf("\r%s %s", styles.SpinnerFrames[frame], label)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			return res
		case <-ticker.C:
			frame++
			fmt.Printf("\r%s %s", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)], label)
		}
	}
}
