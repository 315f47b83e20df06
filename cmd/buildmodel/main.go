package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/sadieom/BiblioMatch/internal/builder"
	"github.com/sadieom/BiblioMatch/internal/config"
	"github.com/sadieom/BiblioMatch/internal/dataset"
	"github.com/sadieom/BiblioMatch/internal/db"
	"github.com/sadieom/BiblioMatch/internal/knn"
	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/pubsub"
	"github.com/sadieom/BiblioMatch/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts builder.Options
		keep int
	)

	cmd := &cobra.Command{
		Use:   "buildmodel",
		Short: "Limpia los csv, calcula los vecinos y publica un modelo nuevo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			cfg.LogNotices()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cmd, cfg, opts, keep)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&opts.BooksPath, "books", "data/books.csv", "ruta a books.csv")
	f.StringVar(&opts.RatingsPath, "ratings", "data/ratings.csv", "ruta a ratings.csv")
	f.IntVar(&opts.MinUserRatings, "min-user-ratings", dataset.DefaultMinUserRatings, "ratings mínimos por usuario")
	f.IntVar(&opts.K, "neighbors", knn.DefaultK, "vecinos por título (sin contar el propio)")
	f.IntVar(&opts.Workers, "workers", 0, "goroutines para el cálculo (0 = NumCPU)")
	f.BoolVar(&opts.DryRun, "dry-run", false, "no escribe en Mongo, solo imprime el reporte")
	f.IntVar(&keep, "keep", builder.DefaultKeep, "versiones a conservar, la nueva incluida")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts builder.Options, keep int) error {
	var b *builder.Builder
	if opts.DryRun {
		b = builder.New(nil, nil)
	} else {
		if err := db.InitMongo(cfg); err != nil {
			return err
		}
		defer func() {
			cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Close(cctx)
		}()

		store := builder.NewMongoStore(
			repository.NewBookRepository(db.DB()),
			repository.NewSimilarityRepository(db.DB()),
			repository.NewModelRepository(db.DB()),
			keep,
		)

		var pub builder.Publisher
		if rdb, err := pubsub.NewRedisClient(cfg); err != nil {
			logging.Warn().Err(err).Msg("redis no disponible, no se avisará a las APIs")
		} else {
			defer rdb.Close()
			pub = pubsub.NewNotifier(rdb, cfg.ModelChannel)
		}
		b = builder.New(store, pub)
	}

	art, err := b.Run(ctx, opts)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(map[string]any{
		"version": art.Model.Version,
		"report":  art.Report,
		"stats":   art.Model.Stats,
		"params":  art.Model.Params,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
