package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// runCmd is the one-shot CLI path for process_command, per SPEC_FULL.md
// §6: no server, one request in, one transcript out.
var runCmd = &cobra.Command{
	Use:   "run [request text]",
	Short: "Run one request through the assistant and print the transcript",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		application, err := buildApp(cfg)
		if err != nil {
			return err
		}
		defer application.Logger.Close()

		userRequest := strings.Join(args, " ")

		stream, _ := cmd.Flags().GetBool("stream")
		if stream {
			result, err := application.Orchestrator.ProcessCommandStream(context.Background(), userRequest, func(chunk string) {
				fmt.Print(chunk)
			})
			if err != nil {
				return err
			}
			_ = result
			fmt.Println()
			return nil
		}

		result, err := application.Orchestrator.ProcessCommand(context.Background(), userRequest)
		if err != nil {
			return err
		}
		fmt.Println(result.Transcript)
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("stream", false, "stream progress chunks as they're produced instead of printing once at the end")
}
