// spellbook-admin inspects a world snapshot with the spell engine:
// working-set preloads, spellbook contents and costs, scroll scans, and
// party synergy reports.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sayshal/spell-book/internal/clients/vtt"
	"github.com/Sayshal/spell-book/internal/config"
	"github.com/Sayshal/spell-book/internal/repositories/spellbooks"
	"github.com/Sayshal/spell-book/internal/services/party"
	"github.com/Sayshal/spell-book/internal/services/preloader"
	"github.com/Sayshal/spell-book/internal/services/scrolls"
	"github.com/Sayshal/spell-book/internal/services/spellindex"
	"github.com/Sayshal/spell-book/internal/services/wizardbook"
)

type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	host   *vtt.Memory
	repo   spellbooks.Repository
	index  spellindex.Service
	books  wizardbook.Service

	redisClient *redis.Client
}

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var logger zerolog.Logger
	if cfg.LogJSON {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	a := &app{cfg: cfg, logger: logger}

	var snapshotPath string

	root := &cobra.Command{
		Use:           "spellbook-admin",
		Short:         "Inspect a world snapshot with the spell engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(snapshotPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "path to a world snapshot JSON file")
	_ = root.MarkPersistentFlagRequired("snapshot")

	root.AddCommand(a.preloadCmd(), a.spellbookCmd(), a.scanCmd(), a.partyCmd())

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func (a *app) setup(snapshotPath string) error {
	host, err := vtt.LoadSnapshot(snapshotPath)
	if err != nil {
		return err
	}
	a.host = host

	if a.cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(a.cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		a.redisClient = redis.NewClient(opts)
		if _, pingErr := a.redisClient.Ping(context.Background()).Result(); pingErr != nil {
			return fmt.Errorf("failed to connect to Redis: %w", pingErr)
		}
		a.repo = spellbooks.NewRedisRepository(&spellbooks.RedisRepoConfig{
			Client: a.redisClient,
		})
		a.logger.Info().Msg("using redis spellbook store")
	} else {
		a.repo = spellbooks.NewInMemoryRepository()
		a.logger.Info().Msg("using in-memory spellbook store")
	}

	a.index = spellindex.NewService(&spellindex.ServiceConfig{
		Client: a.host,
		Logger: a.logger,
	})
	a.books = wizardbook.NewService(&wizardbook.ServiceConfig{
		Client:     a.host,
		Repository: a.repo,
		Logger:     a.logger,
	})

	if err := a.index.CheckConfigured(); err != nil {
		a.logger.Warn().Err(err).Msg("snapshot has no indexed compendiums")
	}
	return nil
}

func (a *app) close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close redis connection")
		}
	}
}

func (a *app) preloadCmd() *cobra.Command {
	var actorID string
	var gm, setup bool

	cmd := &cobra.Command{
		Use:   "preload",
		Short: "Compute the working set for a viewer role",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			viewer := preloader.Viewer{UserID: "admin", IsGM: gm}
			if actorID != "" {
				act, err := a.host.Actor(ctx, actorID)
				if err != nil {
					return err
				}
				viewer.Actor = act
			}
			a.host.Config.Setup = setup

			svc := preloader.NewService(&preloader.ServiceConfig{
				Client:        a.host,
				Index:         a.index,
				Spellbooks:    a.repo,
				ModuleVersion: a.cfg.Module.Version,
				Logger:        a.logger,
			})

			ws, err := svc.Preload(ctx, viewer)
			if err != nil {
				return err
			}

			fmt.Printf("mode: %s\n", ws.Mode)
			fmt.Printf("spell lists: %d\n", len(ws.SpellLists))
			fmt.Printf("spells: %d\n", len(ws.EnrichedSpells))
			for _, list := range ws.SpellLists {
				fmt.Printf("  - %s (%s, %d spells)\n", list.Name, list.ClassIdentifier, len(list.Spells))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&actorID, "actor", "", "viewer's actor ID")
	cmd.Flags().BoolVar(&gm, "gm", false, "viewer is a GM")
	cmd.Flags().BoolVar(&setup, "setup", false, "GM setup mode")
	return cmd
}

func (a *app) spellbookCmd() *cobra.Command {
	var actorID, classID string

	cmd := &cobra.Command{
		Use:   "spellbook",
		Short: "Show an actor's wizard spellbook and free-slot budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			act, err := a.host.Actor(ctx, actorID)
			if err != nil {
				return err
			}

			book, err := a.books.GetBook(ctx, act, classID, "admin")
			if err != nil {
				return err
			}

			uuids, err := book.GetSpells(ctx)
			if err != nil {
				return err
			}
			used, err := book.GetUsedFree(ctx)
			if err != nil {
				return err
			}
			remaining, err := book.GetRemainingFree(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("spellbook %s (%d spells)\n", book.RecordID(), len(uuids))
			fmt.Printf("budget: max %d, free used %d, free remaining %d\n",
				book.GetMaxAllowed(), used, remaining)
			for _, uuid := range uuids {
				fmt.Printf("  - %s [%s]\n", uuid, book.GetLearningSource(uuid))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&actorID, "actor", "", "actor ID")
	cmd.Flags().StringVar(&classID, "class", "wizard", "class ID")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func (a *app) scanCmd() *cobra.Command {
	var actorID string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List learnable scroll candidates on an actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			act, err := a.host.Actor(ctx, actorID)
			if err != nil {
				return err
			}

			svc := scrolls.NewService(&scrolls.ServiceConfig{
				Client: a.host,
				Logger: a.logger,
			})

			candidates, err := svc.Scan(ctx, act)
			if err != nil {
				return err
			}

			fmt.Printf("%d candidate(s)\n", len(candidates))
			for _, c := range candidates {
				fmt.Printf("  - %s (level %d, %s) from %s\n",
					c.Spell.Name, c.Level, c.Spell.School, c.Scroll.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&actorID, "actor", "", "actor ID")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func (a *app) partyCmd() *cobra.Command {
	var viewerUserID string

	cmd := &cobra.Command{
		Use:   "party",
		Short: "Print the party synergy report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			actors, err := a.host.PlayerActors(ctx)
			if err != nil {
				return err
			}

			analyzer := party.NewAnalyzer(&party.AnalyzerConfig{
				Client:       a.host,
				Actors:       actors,
				ViewerUserID: viewerUserID,
				Logger:       a.logger,
			})

			comparison, err := analyzer.Compare(ctx)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(comparison, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&viewerUserID, "viewer", "", "restrict visibility to this user ID")
	return cmd
}
