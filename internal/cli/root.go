package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/haguru/bookstore/config"
	"github.com/haguru/bookstore/internal/app"
	"github.com/haguru/bookstore/internal/commands"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	envPath    string
	logLevel   string
}

// NewRootCmd builds the bookstore command. The first positional argument names
// the operation; the remaining ones are handed to it unchanged.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bookstore <command> [args...]",
		Short: "Query and maintain the plp_bookstore books collection",
		Long:  "Runs one query or maintenance command against the books collection.\n\n" + usageList(),
		Args:  cobra.ArbitraryArgs,
		// Command errors are logged by the app; usage is reserved for flag errors.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookstore, err := app.NewApp(opts.configPath, opts.envPath, out, errOut, opts.logLevel)
			if err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name, args = args[0], args[1:]
			}
			return bookstore.Run(cmd.Context(), name, args)
		},
	}

	// Flags stop at the command name so operation arguments such as "-5" stay positional.
	cmd.Flags().SetInterspersed(false)
	// A dash-prefixed token the flag set does not know is an unknown command.
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return commands.NewDispatcher(commands.Table(), nil, out).PrintHelp()
	})
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.CONFIG_PATH, "path to the YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.envPath, "env-file", config.ENV_PATH, "optional .env file with BOOKSTORE_* overrides")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the configuration")

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd
}

// Execute runs the root command against the process arguments and returns
// the exit status.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, out, errOut io.Writer) int {
	cmd := NewRootCmd(out, errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var cmdErr *app.CommandError
		if !errors.As(err, &cmdErr) {
			fmt.Fprintln(errOut, err)
		}
		return 1
	}
	return 0
}

func usageList() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, c := range commands.Table() {
		fmt.Fprintf(&b, "  %s\n", c.Usage())
	}
	return b.String()
}
