// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cybrota/roster/avl"
)

var version = "0.3.0"

type rootOptions struct {
	configPath  string
	logLevel    string
	metricsAddr string
}

// env is everything a subcommand needs once flags and config are resolved.
type env struct {
	config *Config
	level  string
	log    zerolog.Logger
}

func (o *rootOptions) setup() *env {
	InitializeColors()

	config, err := LoadConfig(o.configPath)
	logLevel := config.Log.Level
	if o.logLevel != "" {
		logLevel = o.logLevel
	}
	logger := newLogger(os.Stderr, logLevel)
	if err != nil {
		logger.Warn().Err(err).Msg("using default settings")
	}

	if o.metricsAddr != "" {
		config.Metrics.Addr = o.metricsAddr
	}
	return &env{config: config, level: logLevel, log: logger}
}

func (e *env) newSession(out io.Writer) *Session {
	tree := avl.New(avl.WithLogger(e.log))
	return NewSession(tree, out, e.config, e.log)
}

// startMetrics serves the session's metrics when an address is configured
// and returns a function that stops the server.
func (e *env) startMetrics(s *Session) func() {
	if e.config.Metrics.Addr == "" {
		return func() {}
	}
	srv := serveMetrics(e.config.Metrics.Addr, newMetricsRegistry(s), e.log)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func main() {
	asciiLogo := `
██████╗  ██████╗ ███████╗████████╗███████╗██████╗
██╔══██╗██╔═══██╗██╔════╝╚══██╔══╝██╔════╝██╔══██╗
██████╔╝██║   ██║███████╗   ██║   █████╗  ██████╔╝
██╔══██╗██║   ██║╚════██║   ██║   ██╔══╝  ██╔══██╗
██║  ██║╚██████╔╝███████║   ██║   ███████╗██║  ██║
╚═╝  ╚═╝ ╚═════╝ ╚══════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝
A balanced roster of records indexed by id [Version: %s%s%s]
`

	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	opts := &rootOptions{}

	shell := func(cmd *cobra.Command, args []string) error {
		e := opts.setup()
		session := e.newSession(os.Stdout)
		defer e.startMetrics(session)()
		return runShell(os.Stdin, os.Stdout, session, e.config.Shell.Prompt)
	}

	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive roster shell",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Shell reads insert, delete, find and report commands from the terminal`),
		Args:  cobra.NoArgs,
		RunE:  shell,
	}

	var tuiLogFile string
	var cmdTUI = &cobra.Command{
		Use:   "tui",
		Short: "Launch the roster terminal UI",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Tui runs commands with a live report of the tree`),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := opts.setup()
			logger, closer, err := tuiLogger(tuiLogFile, e.level)
			if err != nil {
				return err
			}
			defer closer.Close()
			e.log = logger

			var output bytes.Buffer
			session := e.newSession(&output)
			defer e.startMetrics(session)()
			return runBubbleTeaApp(session, &output, NewOptimizedHelpCache())
		},
	}

	cmdTUI.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file while the UI owns the terminal")

	var keepGoing, reportAfter bool
	var cmdRun = &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a file of roster commands",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Run executes one command per line; blank lines and # comments are skipped`),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := opts.setup()
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			session := e.newSession(os.Stdout)
			if err := runScript(f, os.Stderr, session, keepGoing); err != nil {
				return err
			}
			if reportAfter {
				return session.WriteReport(os.Stdout)
			}
			return nil
		},
	}
	cmdRun.Flags().BoolVar(&keepGoing, "keep-going", false, "continue after a failing command")
	cmdRun.Flags().BoolVar(&reportAfter, "report", false, "print the report when the script ends")

	var thenShell bool
	var cmdLoad = &cobra.Command{
		Use:   "load <records.yaml>",
		Short: "Bulk insert records from a YAML file",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Load inserts every record of the file, reporting ids used more than once`),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := opts.setup()
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			entries, err := readRecordFile(f)
			f.Close()
			if err != nil {
				return err
			}

			session := e.newSession(os.Stdout)
			var summary LoadSummary
			err = session.Locked(func(tree *avl.Tree) error {
				var err error
				summary, err = newRecordLoader(tree, e.config.Load, os.Stdout).Load(entries, os.Stderr)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s✅ Loaded %s records%s (%s repeated in file, %s already in use)\n",
				Green, humanize.Comma(int64(summary.Inserted)), Reset,
				humanize.Comma(int64(summary.DuplicateInFile)),
				humanize.Comma(int64(summary.DuplicateInTree)))

			if thenShell {
				defer e.startMetrics(session)()
				return runShell(os.Stdin, os.Stdout, session, e.config.Shell.Prompt)
			}
			return session.WriteReport(os.Stdout)
		},
	}
	cmdLoad.Flags().BoolVar(&thenShell, "shell", false, "continue in the interactive shell after loading")

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print Roster usage guide",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Usage displays the roster CLI usage guide`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Print Roster settings, creating the default file if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			InitializeColors()
			return displaySettings(os.Stdout, opts.configPath)
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print Roster version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:     "roster",
		Version: version,
		Long:    asciiLogo,
		Args:    cobra.NoArgs,
		// Default to the shell when no subcommand is provided
		RunE:          shell,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/"+configFileName+")")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9464")

	rootCmd.AddCommand(cmdShell, cmdTUI, cmdRun, cmdLoad, cmdUsage, cmdSettings, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
