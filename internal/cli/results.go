package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewResultsCmd создаёт группу команд для работы с папками результатов.
func NewResultsCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Manage result folders",
	}

	cmd.AddCommand(
		newResultsListCmd(clientFn, outputFn),
		newResultsDownloadCmd(clientFn, outputFn),
		newResultsDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newResultsListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List result folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			folders, err := clientFn().ListFolders()
			if err != nil {
				return err
			}

			headers := []string{"NAME", "CREATED", "SOLUTIONS", "FILES", "SIZE"}
			rows := make([][]string, len(folders))
			for i, f := range folders {
				rows[i] = []string{
					f.Name,
					f.Created,
					strconv.Itoa(f.SolutionsCount),
					strconv.Itoa(f.FileCount),
					humanize.Bytes(uint64(f.TotalSize)),
				}
			}

			outputFn().Print(headers, rows, folders)
			return nil
		},
	}

	return cmd
}

func newResultsDownloadCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "download NAME",
		Short: "Download a result folder as zip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			data, err := clientFn().DownloadFolder(args[0])
			if err != nil {
				return err
			}

			dest := outFile
			if dest == "" {
				dest = args[0] + ".zip"
			}

			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return fmt.Errorf("write archive: %w", err)
			}

			out.Success(fmt.Sprintf("Saved %s (%s)", dest, humanize.Bytes(uint64(len(data)))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file (default NAME.zip)")

	return cmd
}

func newResultsDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a result folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			result, err := clientFn().DeleteFolder(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Deleted %s (%d files)", result.Name, result.FilesDeleted))
			return nil
		},
	}

	return cmd
}
