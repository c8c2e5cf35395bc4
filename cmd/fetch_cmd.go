package cmd

import (
	"fmt"

	"github.com/AndCook/rover-data-processor/mirror"
	"github.com/spf13/cobra"
)

type FetchParams struct {
	Dest     string `json:"dest"`     // local archive root
	Endpoint string `json:"endpoint"` // s3 endpoint, host:port
	Bucket   string `json:"bucket"`
	Prefix   string `json:"prefix"` // key prefix of the archive root
}

var fetchParams *FetchParams

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Mirror an archive from S3-compatible storage to local disk",
	Args:  cobra.NoArgs,
	RunE:  fetchRun,
}

func init() {
	fetchParams = &FetchParams{}
	fetchCmd.Flags().StringVarP(&fetchParams.Dest, "dest", "d", cfg.ArchiveRoot, "local directory to mirror into")
	fetchCmd.Flags().StringVar(&fetchParams.Endpoint, "endpoint", cfg.Archive.Endpoint, "s3 endpoint")
	fetchCmd.Flags().StringVar(&fetchParams.Bucket, "bucket", cfg.Archive.Bucket, "bucket holding the archive")
	fetchCmd.Flags().StringVar(&fetchParams.Prefix, "prefix", cfg.Archive.Prefix, "key prefix of the archive root")
}

func fetchRun(cmd *cobra.Command, args []string) error {
	ac := cfg.Archive
	ac.Endpoint = fetchParams.Endpoint
	ac.Bucket = fetchParams.Bucket
	ac.Prefix = fetchParams.Prefix

	m, err := mirror.New(ac)
	if err != nil {
		return err
	}
	stats, err := m.Sync(cmd.Context(), fetchParams.Dest)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "downloaded %d objects (%d bytes), %d already present\n", stats.Downloaded, stats.Bytes, stats.Skipped)
	return nil
}
