package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/matchboard/internal/core/config"
	"github.com/vietddude/matchboard/internal/datastore/postgres"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show campaign counts per status from the configured datastore",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Datastore.Postgres.URL == "" {
		slog.Error("status requires a PostgreSQL datastore in config")
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.Datastore.Postgres)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*), COALESCE(AVG(min_followers), 0)
		FROM campaigns GROUP BY status ORDER BY status`)
	if err != nil {
		slog.Error("Failed to query campaigns", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = rows.Close()
	}()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "STATUS\tCAMPAIGNS\tAVG MIN FOLLOWERS")

	for rows.Next() {
		var status string
		var count int64
		var avgFollowers float64
		if err := rows.Scan(&status, &count, &avgFollowers); err != nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.0f\n", status, count, avgFollowers)
	}
	_ = w.Flush()
}
