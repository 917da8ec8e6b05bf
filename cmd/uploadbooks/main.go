package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Astemirdum/home-library/pkg/jsonx"
	"github.com/Astemirdum/home-library/pkg/logger"
	"github.com/Astemirdum/home-library/uploader/app"
	"github.com/Astemirdum/home-library/uploader/config"
	"github.com/Astemirdum/home-library/uploader/client"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, cfgErr := config.NewConfig()
	cmd := &cobra.Command{
		Use:   "uploadbooks",
		Short: "Upload a JSON list of books to the catalog",
		Long: `Reads a JSON array of {isbn,title,author_first,author_last} and posts each
book to <endpoint>/books with the bearer token.

Examples:
  uploadbooks --file books.json
  uploadbooks --endpoint http://localhost:8080/api/v1 --rps 2 --strict-isbn`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgErr != nil {
				return errors.Wrap(cfgErr, "config")
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.File, "file", "f", cfg.File, "books file")
	cmd.Flags().StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "catalog base url (API_ENDPOINT)")
	cmd.Flags().IntVar(&cfg.RPS, "rps", cfg.RPS, "requests per second, 0 for unlimited")
	cmd.Flags().BoolVar(&cfg.StrictISBN, "strict-isbn", cfg.StrictISBN, "skip books with an invalid isbn checksum")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.Endpoint == "" || cfg.Token == "" {
		return errors.New("set API_ENDPOINT and JWT_TOKEN before running")
	}
	log := logger.NewLogger(cfg.Log, "uploadbooks")
	defer log.Sync() //nolint:errcheck

	books, err := app.LoadBooks(cfg.File)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(cfg.Endpoint, cfg.Token, cfg.RPS, cfg.Timeout)
	sum := app.Upload(ctx, books, c, cfg.StrictISBN, log)
	log.Info("upload finished",
		zap.Int("total", len(books)),
		zap.Int("uploaded", sum.Uploaded),
		zap.Int("failed", sum.Failed),
		zap.Int("skipped", sum.Skipped),
	)
	out, _ := jsonx.Marshal(sum) //nolint:errcheck
	fmt.Println(string(out))
	return nil
}
