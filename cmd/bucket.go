package cmd

import (
	"fmt"

	"path-store/core/storage"

	"github.com/spf13/cobra"
)

var (
	bucketPublic    bool
	bucketSizeLimit string
	bucketMimeTypes []string
	destroyConfirm  bool
)

// bucketCmd represents the bucket command
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage the configured bucket",
}

// bucketInitCmd represents the bucket init command
var bucketInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the configured bucket",
	Long: `Creates the configured bucket, or updates its options when it already
exists. The call is idempotent: running it twice with the same options
succeeds both times.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, _, err := buildStore(ctx)
		if err != nil {
			return err
		}

		opts := storage.BucketOptions{
			Public:           bucketPublic,
			FileSizeLimit:    bucketSizeLimit,
			AllowedMimeTypes: bucketMimeTypes,
		}
		if err := store.InitBucket(ctx, opts); err != nil {
			return err
		}

		fmt.Printf("bucket %s initialized\n", store.BucketName())
		fmt.Printf("url prefix: %s\n", store.BucketURLPrefix())
		return nil
	},
}

// bucketDestroyCmd represents the bucket destroy command
var bucketDestroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Empty and delete the configured bucket",
	Long: `Removes every object in the configured bucket, then deletes the bucket
itself. The two steps are not transactional.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !destroyConfirm {
			return fmt.Errorf("refusing to destroy without --yes")
		}

		ctx := cmd.Context()
		store, _, err := buildStore(ctx)
		if err != nil {
			return err
		}
		if err := store.DestroyBucket(ctx); err != nil {
			return err
		}

		fmt.Printf("bucket %s destroyed\n", store.BucketName())
		return nil
	},
}

func init() {
	bucketInitCmd.Flags().BoolVar(&bucketPublic, "public", false, "grant anonymous read access")
	bucketInitCmd.Flags().StringVar(&bucketSizeLimit, "size-limit", "", "maximum accepted object size")
	bucketInitCmd.Flags().StringSliceVar(&bucketMimeTypes, "mime", nil, "allowed MIME types (repeatable)")
	bucketDestroyCmd.Flags().BoolVar(&destroyConfirm, "yes", false, "confirm destruction")

	bucketCmd.AddCommand(bucketInitCmd)
	bucketCmd.AddCommand(bucketDestroyCmd)
	RootCmd.AddCommand(bucketCmd)
}
