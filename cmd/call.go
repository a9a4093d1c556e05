package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/workspace-mcp/internal/registry"
)

// errOperationFailed is returned when the envelope reports an error, so
// the process exits non-zero after the text has been printed.
var errOperationFailed = errors.New("operation failed")

func newCallCmd() *cobra.Command {
	var (
		rawArgs string
		flags   configFlags
	)

	cmd := &cobra.Command{
		Use:   "call <operation|resource-uri>",
		Short: "Invoke one operation or read one resource",
		Long: `Invoke a single operation through the same path the MCP server uses and
print its text result. The command exits non-zero when the operation fails.

An argument containing "://" is read as a resource URI instead.

Examples:
  workspace-mcp call gmail_list_messages --args '{"maxResults": 5}'
  workspace-mcp call workspace://docs/gmail`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, cfg.Credential(), appOptions{logger: quietLogger(cmd.ErrOrStderr())})
			if err != nil {
				return err
			}
			defer a.Close()
			return runCall(ctx, cmd.OutOrStdout(), a.registry, args[0], rawArgs)
		},
	}

	cmd.Flags().StringVar(&rawArgs, "args", "", "Operation arguments as a JSON object")
	flags.register(cmd)
	return cmd
}

func runCall(ctx context.Context, out io.Writer, reg *registry.Registry, target, rawArgs string) error {
	if strings.Contains(target, "://") {
		text, err := reg.Read(ctx, target)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	args := map[string]any{}
	if strings.TrimSpace(rawArgs) != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return fmt.Errorf("invalid --args: %w", err)
		}
	}

	env, err := reg.Invoke(ctx, target, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, env.Text())
	if env.IsError {
		return errOperationFailed
	}
	return nil
}
