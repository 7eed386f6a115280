package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentdesk"
	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/config"
	"github.com/hupe1980/agentdesk/pipeline"
	"github.com/hupe1980/agentdesk/server"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "agentdesk",
		Short:         "Medical text agents: summarize, write articles, sanitize PHI",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(
		newServeCmd(flags),
		newRunCmd(flags),
		newAgentCmd(flags),
		newAgentsCmd(),
	)
	return cmd
}

func loadApp(flags *rootFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	return newApp(cfg)
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				a.cfg.Server.Port = port
			}
			srv := server.New(a.runner, a.llm, func(o *server.Options) {
				o.Addr = fmt.Sprintf(":%d", a.cfg.Server.Port)
				o.AllowedOrigins = a.cfg.Server.AllowedOrigins
				o.ShutdownTimeout = a.cfg.Server.ShutdownTimeout
				o.Logger = a.logger.WithComponent("server")
				o.Observer = a.metrics
				o.Gatherer = a.registry
			})
			a.logger.Info("Starting agentdesk", "version", Version, "provider", a.cfg.Model.Provider, "model", a.llm.Info().Name)
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config and PORT)")
	return cmd
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		taskName string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "run --task <task> <text|->",
		Short: "Run a task pipeline (main, refine, validate)",
		Long: "Run a task pipeline. Tasks: " + strings.Join(taskNames(), ", ") +
			". Pass - to read the text from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := pipeline.ParseTask(taskName)
			if err != nil {
				return err
			}
			text, err := readText(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			res, err := a.runner.Run(cmd.Context(), task, text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "== %s ==\n\n%s\n\n== Refined ==\n\n%s\n\n== Validation ==\n\n%s\n",
				task.Label(), res.MainResult, res.RefinementResult, res.ValidationResult)
			return nil
		},
	}
	cmd.Flags().StringVarP(&taskName, "task", "t", string(pipeline.TaskSummarize), "task to run")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newAgentCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "agent <name> <text|->",
		Short: "Execute a single agent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			ag, err := a.manager.Get(args[0])
			if err != nil {
				return err
			}
			out, err := ag.Execute(cmd.Context(), agent.Text(text))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List registered agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range agentdesk.NewManager().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func taskNames() []string {
	tasks := pipeline.Tasks()
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = string(t)
	}
	return names
}

// readText returns arg, or all of r when arg is "-".
func readText(r io.Reader, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
