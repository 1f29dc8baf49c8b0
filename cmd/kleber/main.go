package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/takeshixx/kleber"
	"github.com/takeshixx/kleber/clientcli"
	"github.com/takeshixx/kleber/config"
)

// options holds everything parsed from the command line.
type options struct {
	infile     string
	list       bool
	name       string
	secure     bool
	password   string
	lifetime   int64
	clipboard  bool
	configFile string
	listPage   int
	verbosity  int
	version    bool
}

// app carries the process streams and the system integrations, so tests
// can replace them.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// clipboard copies text to the system clipboard.
	clipboard func(text string) error

	// terminalWidth reports the width of stderr and whether it is a terminal.
	terminalWidth func() (int, bool)
}

func newApp() *app {
	return &app{
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		clipboard:     copyToClipboard,
		terminalWidth: stderrWidth,
	}
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "kleber [filename]",
		Short: "Kleber CLI",
		Long: `Kleber CLI - upload files and pastes to https://kleber.io

Examples:
  kleber notes.txt                 Upload a file and print its URL
  cat log.txt | kleber -           Upload standard input
  kleber -s -p secret -t 3600 a.txt
  kleber -l -o 2                   Show the second page of your uploads`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.infile = args[0]
			}
			return a.run(cmd, opts)
		},
	}

	addFlags(cmd.Flags(), opts)

	return cmd
}

func addFlags(flags *pflag.FlagSet, opts *options) {
	flags.BoolVarP(&opts.list, "list", "l", false, "list pastes/files")
	flags.StringVarP(&opts.name, "name", "n", "", "name for the uploaded file/paste")
	flags.BoolVarP(&opts.secure, "secure", "s", false, "use a longer, secure URL")
	flags.StringVarP(&opts.password, "password", "p", "", "password for the file/paste")
	flags.Int64VarP(&opts.lifetime, "lifetime", "t", kleber.DefaultLifetime, "lifetime of the uploaded file/paste in seconds")
	flags.BoolVarP(&opts.clipboard, "clipboard", "d", false, "add document link to clipboard")
	flags.StringVarP(&opts.configFile, "config", "c", "", "provide a custom config file (default: ~/.kleberrc, env: KLEBER_CONFIG)")
	flags.IntVarP(&opts.listPage, "page", "o", 1, "pagination page")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "verbose logging (repeat for more verbosity)")
	flags.BoolVar(&opts.version, "version", false, "print the current version")
}

func (a *app) run(cmd *cobra.Command, opts *options) error {
	logger := newLogger(a.stderr, opts.verbosity)
	ctx := cmd.Context()

	switch {
	case opts.list:
		return a.runList(ctx, logger, opts)
	case opts.version:
		_, err := fmt.Fprintln(a.stdout, kleber.Version)
		return err
	case opts.infile != "":
		return a.runUpload(ctx, logger, opts)
	default:
		return cmd.Help()
	}
}

// newClient resolves the API key and builds a client.
func (a *app) newClient(logger *slog.Logger, opts *options) (*clientcli.Client, error) {
	cfg, err := config.Load(config.Options{
		ConfigFile: opts.configFile,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	clientCfg := clientcli.MergeConfig(clientcli.ConfigFromEnv(), &clientcli.Config{APIKey: cfg.APIKey})
	return clientcli.New(clientCfg,
		clientcli.WithLogger(logger),
		clientcli.WithStdin(a.stdin),
	)
}

// execute runs the command line and reports a failure on stderr.
func (a *app) execute(ctx context.Context, args []string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		_ = clientcli.FormatError(a.stderr, err)
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp().execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}
