// Command simctl drives the simulator from the terminal.
//
// Usage:
//
//	simctl roster import teams.json
//	simctl simulate --team-a Vitality --team-b G2 --format BO3
//	simctl career create s1mple --role AWPer --team "Natus Vincere"
//	simctl career play s1mple --seed 42
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	fxmodules "cs2-simulator/internal/fx"
	"cs2-simulator/internal/logger"
	"cs2-simulator/internal/repository"
	"cs2-simulator/internal/service"
)

func main() {
	root := &cobra.Command{
		Use:           "simctl",
		Short:         "CS2 match simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(simulateCmd())
	root.AddCommand(careerCmd())
	root.AddCommand(rosterCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(seriesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// deps is what the commands pull out of the fx graph.
type deps struct {
	sim     *service.SimulationService
	careers *service.CareerService
	rosters *service.RosterService
	catalog *repository.CatalogRepository
}

// run builds the dependency graph, hands it to fn and closes the database
// afterwards. Interrupts cancel the context.
func run(fn func(ctx context.Context, d *deps) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var (
		d     deps
		sqlDB *sql.DB
	)
	app := fx.New(
		fx.Provide(logger.Console),
		fxmodules.Module,
		fx.NopLogger,
		fx.Populate(&d.sim, &d.careers, &d.rosters, &d.catalog, &sqlDB),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer sqlDB.Close()

	return fn(ctx, &d)
}

func simulateCmd() *cobra.Command {
	var (
		teamA, teamB, format string
		seed                 uint64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a series between two stored teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				out, err := d.sim.SimulateSeries(ctx, teamA, teamB, format, seed)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				printSeries(w, out.Result)
				fmt.Fprintf(w, "\nseries %s (seed %d)\n", out.ID, out.Seed)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&teamA, "team-a", "", "First team")
	cmd.Flags().StringVar(&teamB, "team-b", "", "Second team")
	cmd.Flags().StringVar(&format, "format", "", "Series format (BO1, BO3, BO5); defaults to DEFAULT_SERIES_FORMAT")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed; 0 draws a fresh one")
	cmd.MarkFlagRequired("team-a")
	cmd.MarkFlagRequired("team-b")
	return cmd
}

func careerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Manage player careers",
	}
	cmd.AddCommand(careerCreateCmd())
	cmd.AddCommand(careerShowCmd())
	cmd.AddCommand(careerPlayCmd())
	cmd.AddCommand(careerListCmd())
	cmd.AddCommand(careerDeleteCmd())
	cmd.AddCommand(careerHistoryCmd())
	return cmd
}

func careerCreateCmd() *cobra.Command {
	var role, team string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Start a new career",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				c, err := d.careers.Create(ctx, args[0], role, team)
				if err != nil {
					return err
				}
				printCareer(cmd.OutOrStdout(), c.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Player role; defaults to Rifler")
	cmd.Flags().StringVar(&team, "team", "", "Team to join; empty signs as a free agent")
	return cmd
}

func careerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a career",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				c, err := d.careers.Get(ctx, args[0])
				if err != nil {
					return err
				}
				printCareer(cmd.OutOrStdout(), c.Summary())
				return nil
			})
		},
	}
}

func careerPlayCmd() *cobra.Command {
	var (
		opponent string
		seed     uint64
	)
	cmd := &cobra.Command{
		Use:   "play <name>",
		Short: "Play a BO1 with the career player's team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				report, err := d.careers.PlayMatch(ctx, args[0], opponent, seed)
				if err != nil {
					return err
				}
				printMatchReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opponent, "opponent", "", "Opponent team; empty picks one at random")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed; 0 draws a fresh one")
	return cmd
}

func careerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List careers, most recently played first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				careers, err := d.careers.List(ctx)
				if err != nil {
					return err
				}
				printCareers(cmd.OutOrStdout(), careers)
				return nil
			})
		},
	}
}

func careerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a career and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				if err := d.careers.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted career %s\n", args[0])
				return nil
			})
		},
	}
}

func careerHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <name>",
		Short: "Show recent career matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				matches, err := d.careers.History(ctx, args[0], limit)
				if err != nil {
					return err
				}
				printHistory(cmd.OutOrStdout(), matches)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of matches; defaults to 10")
	return cmd
}

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage professional rosters",
	}

	var seed uint64
	importCmd := &cobra.Command{
		Use:   "import [path-or-url]",
		Short: "Replace the stored rosters with a teams file",
		Long:  "Replace the stored professional rosters with a teams file read from a path or an http(s) URL. Without an argument ROSTER_FEED_URL is used. Career players keep their roster slots.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source string
			if len(args) == 1 {
				source = args[0]
			}
			return run(func(ctx context.Context, d *deps) error {
				report, err := d.rosters.Import(ctx, source, seed)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d teams and %d players from %s (seed %d)\n",
					report.Teams, report.Players, report.Source, report.Seed)
				return nil
			})
		},
	}
	importCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for role assignment; 0 draws a fresh one")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored teams and their players",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				teams, err := d.sim.ListTeams(ctx)
				if err != nil {
					return err
				}
				printTeams(cmd.OutOrStdout(), teams)
				return nil
			})
		},
	}

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show reference data",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "roles",
		Short: "List player roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				roles, err := d.catalog.Roles(ctx)
				if err != nil {
					return err
				}
				printCatalog(cmd.OutOrStdout(), roles)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				achievements, err := d.catalog.Achievements(ctx)
				if err != nil {
					return err
				}
				printCatalog(cmd.OutOrStdout(), achievements)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				stats, err := d.catalog.Stats(ctx)
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	})
	return cmd
}

func seriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Inspect stored series",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				rec, err := d.sim.GetSeries(ctx, args[0])
				if err != nil {
					return err
				}
				printSeriesRecord(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	})

	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "List recent series",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				records, err := d.sim.RecentSeries(ctx, limit)
				if err != nil {
					return err
				}
				printRecentSeries(cmd.OutOrStdout(), records)
				return nil
			})
		},
	}
	recent.Flags().IntVar(&limit, "limit", 0, "Number of series; defaults to 20")
	cmd.AddCommand(recent)
	return cmd
}
