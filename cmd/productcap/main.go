package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jask/productcap/internal/catalog"
	"github.com/jask/productcap/internal/config"
	"github.com/jask/productcap/internal/database"
	"github.com/jask/productcap/internal/database/repository"
	"github.com/jask/productcap/internal/logging"
	"github.com/jask/productcap/internal/notify"
	"github.com/jask/productcap/internal/tui"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "productcap",
		Short:        "Enter up to five products with a name, price and photo",
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $HOME/.config/productcap/config.toml)")
	root.AddCommand(newInboxCmd(&cfgPath))
	return root
}

func runTUI(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	var db *sql.DB
	if notify.Wants(cfg.Notify, notify.BackendInbox) {
		db, err = database.OpenMigrated(cfg.Notify.InboxPath)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	sessionID := uuid.NewString()
	notifier, err := notify.FromConfig(cfg.Notify, logger, db, sessionID)
	if err != nil {
		return err
	}

	session := catalog.NewSession(sessionID, notifier, catalog.WithLogger(logger.With().Str("session", sessionID).Logger()))
	logger.Info().Str("session", session.ID).Strs("notify", cfg.Notify.Backends).Msg("session started")

	p := tea.NewProgram(tui.New(ctx, cfg, session, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	// let a threshold notification that is still in flight finish
	session.Store.Wait()
	logger.Info().Int("products", session.Store.Size()).Msg("session ended")
	if runErr != nil {
		return fmt.Errorf("run tui: %w", runErr)
	}
	return nil
}

func newInboxCmd(cfgPath *string) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List notifications recorded by the inbox backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			log := logging.Console(zerolog.WarnLevel)
			if _, err := os.Stat(cfg.Notify.InboxPath); os.IsNotExist(err) {
				log.Warn().Str("path", cfg.Notify.InboxPath).Msg("inbox does not exist yet")
				return nil
			}
			db, err := database.OpenMigrated(cfg.Notify.InboxPath)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewNotificationRepo(db)
			if clearAll {
				n, err := repo.Clear(cmd.Context())
				if err != nil {
					return fmt.Errorf("clear inbox: %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d notifications\n", n)
				return err
			}
			list, err := repo.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list inbox: %w", err)
			}
			return printInbox(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all recorded notifications")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum notifications to show (0 for all)")
	return cmd
}

func printInbox(w io.Writer, list []repository.Notification) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "no notifications")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSESSION\tTITLE\tBODY")
	for _, n := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.CreatedAt.Local().Format("2006-01-02 15:04:05"), shortID(n.SessionID), n.Title, n.Body)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
