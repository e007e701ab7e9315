package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recall-ai/recall/pkg/cache/file"
	"github.com/recall-ai/recall/pkg/calllog"
	"github.com/recall-ai/recall/pkg/client"
	"github.com/recall-ai/recall/pkg/provider/openai"
	"github.com/recall-ai/recall/pkg/tracker"
)

func newCompleteCmd() *cobra.Command {
	var (
		configPath string
		noCache    bool
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "complete [prompt]",
		Short: "Send a prompt to the model and print the completion",
		Long: `Send a prompt to the configured model and print the completion.

The prompt is taken from the argument, or read from stdin when absent.
Repeated prompts are served from the on-disk cache unless --no-cache is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			prompt, err := resolvePrompt(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			completer, err := openai.New(cfg.APIKey, cfg.Model, cfg.BaseURL)
			if err != nil {
				return fmt.Errorf("init provider: %w", err)
			}

			callLog, err := calllog.New(cfg.LogDir)
			if err != nil {
				return fmt.Errorf("init call log: %w", err)
			}

			var opts []client.Option
			tr, err := tracker.New(cfg.DBPath)
			if err != nil {
				log.Printf("usage tracking disabled: %v", err)
			} else {
				defer func() { _ = tr.Close() }()
				opts = append(opts, client.WithTracker(tr))
			}

			c := client.New(completer, file.New(cfg.CacheFile), callLog, opts...)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var callOpts []client.CallOption
			if noCache || !cfg.Cache.Enabled {
				callOpts = append(callOpts, client.WithoutCache())
			}

			res, err := c.CompleteDetailed(ctx, prompt, callOpts...)
			if err != nil {
				return err
			}

			fmt.Println(res.Text)
			if detailed {
				fmt.Fprintf(os.Stderr, "model=%s cache=%s latency=%dms\n",
					res.Model, res.Outcome, res.LatencyMs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the prompt cache for this call")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "print cache outcome and latency to stderr")
	return cmd
}

// resolvePrompt takes the prompt from the argument or stdin.
func resolvePrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt from stdin: %w", err)
	}
	prompt := strings.TrimRight(string(data), "\n")
	return prompt, nil
}
