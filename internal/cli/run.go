package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// NewRunCmd создаёт группу команд для управления запусками.
func NewRunCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Manage solver runs",
	}

	cmd.AddCommand(
		newRunSubmitCmd(clientFn, outputFn),
		newRunStatusCmd(clientFn, outputFn),
		newRunStopCmd(clientFn, outputFn),
	)

	return cmd
}

func newRunSubmitCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "submit CASE_FILE",
		Short: "Submit a scheduling case for solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			caseJSON, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read case file: %w", err)
			}

			run, err := client.SubmitCase(caseJSON)
			if err != nil {
				return err
			}

			out.Success("Run submitted: " + run.RunID)

			if wait {
				run, err = waitForRun(client, out, run.RunID)
				if err != nil {
					return err
				}
			}

			printRun(out, run)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Poll status until the run finishes")

	return cmd
}

func newRunStatusCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status RUN_ID",
		Short: "Show run status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := clientFn().GetStatus(args[0])
			if err != nil {
				return err
			}

			printRun(outputFn(), run)
			return nil
		},
	}

	return cmd
}

func newRunStopCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop RUN_ID",
		Short: "Stop a running solve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			run, err := clientFn().StopRun(args[0])
			if err != nil {
				return err
			}

			out.Success("Run stopped: " + run.RunID)
			printRun(out, run)
			return nil
		},
	}

	return cmd
}

// waitForRun опрашивает статус до терминального состояния.
func waitForRun(client *Client, out *Output, runID string) (*RunResponse, error) {
	for {
		run, err := client.GetStatus(runID)
		if err != nil {
			return nil, err
		}

		switch run.Status {
		case "completed", "failed", "stopped":
			return run, nil
		}

		out.Success(fmt.Sprintf("%s: %d%% — %s", run.Status, run.Progress, run.Message))
		time.Sleep(5 * time.Second)
	}
}

func printRun(out *Output, run *RunResponse) {
	headers := []string{"RUN_ID", "STATUS", "PROGRESS", "MESSAGE", "RESULT"}
	rows := [][]string{{
		run.RunID,
		run.Status,
		strconv.Itoa(run.Progress) + "%",
		run.Message,
		run.ResultRef,
	}}

	out.Print(headers, rows, run)
}
