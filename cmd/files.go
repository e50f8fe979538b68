package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var uploadContentType string

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <local-file> <remote-path>",
	Short: "Upload a local file to a remote path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		store, _, err := buildStore(ctx)
		if err != nil {
			return err
		}
		path, err := store.Upload(ctx, content, args[1], uploadContentType)
		if err != nil {
			return err
		}

		fmt.Println(path)
		return nil
	},
}

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls <path>",
	Short: "List all files beneath a path recursively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, _, err := buildStore(ctx)
		if err != nil {
			return err
		}

		files, err := store.ListAllFiles(ctx, args[0])
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	},
}

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm <path>...",
	Short: "Delete every file beneath the given paths",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, _, err := buildStore(ctx)
		if err != nil {
			return err
		}

		removed, err := store.Delete(ctx, args)
		if err != nil {
			return err
		}
		for _, f := range removed {
			fmt.Println(f)
		}
		return nil
	},
}

// cpCmd represents the cp command
var cpCmd = &cobra.Command{
	Use:   "cp <from> <to>",
	Short: "Copy an object between two paths",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, _, err := buildStore(ctx)
		if err != nil {
			return err
		}

		path, err := store.Copy(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Println(path)
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadContentType, "content-type", "", "MIME type stored with the object")

	RootCmd.AddCommand(uploadCmd)
	RootCmd.AddCommand(lsCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(cpCmd)
}
