package catalog

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kaytu-io/cloud-catalog/pkg/internal/httpserver"
)

var (
	HttpServerAddress = os.Getenv("HTTP_ADDRESS")
	AccountsPath      = os.Getenv("ACCOUNTS_PATH")
	DefaultRegion     = os.Getenv("AWS_DEFAULT_REGION")
	EnrichBatchSize   = os.Getenv("ENRICH_BATCH_SIZE")
)

func Command() *cobra.Command {
	return &cobra.Command{
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}

			batchSize := 0
			if EnrichBatchSize != "" {
				batchSize, err = strconv.Atoi(EnrichBatchSize)
				if err != nil {
					return fmt.Errorf("parse ENRICH_BATCH_SIZE: %w", err)
				}
			}

			handler, err := InitializeHttpHandler(AccountsPath, DefaultRegion, batchSize, logger)
			if err != nil {
				return err
			}

			return httpserver.RegisterAndStart(cmd.Context(), logger, HttpServerAddress, handler)
		},
	}
}
