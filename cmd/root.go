package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/airRnot1106/git-ombl/ombl"
	"github.com/airRnot1106/git-ombl/ombl/format"
	"github.com/airRnot1106/git-ombl/ombl/gitrepo"
	"github.com/airRnot1106/git-ombl/ombl/gittime"
	"github.com/airRnot1106/git-ombl/ombl/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "git-ombl <file> <line>",
	Short:        "Trace the complete commit history of one line of a file",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// potentially enable profiling
		p, _ := cmd.Flags().GetString("profile")
		switch p {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.Quiet).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.Quiet).Stop()
		case "trace":
			defer profile.Start(profile.TraceProfile, profile.Quiet).Stop()
		case "block":
			defer profile.Start(profile.BlockProfile, profile.Quiet).Stop()
		case "mutex":
			defer profile.Start(profile.MutexProfile, profile.Quiet).Stop()
		default:
			return fmt.Errorf("unexpected profile %q, expected one of cpu, mem, trace, block, mutex", p)
		}

		lineNumber, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("line number must be an integer, got %q", args[1])
		}

		q := ombl.Query{
			FilePath:   args[0],
			LineNumber: lineNumber,
		}

		sortOrder, _ := cmd.Flags().GetString("sort")
		switch sortOrder {
		case "asc":
			q.Sort = ombl.SortAscending
		case "desc":
			q.Sort = ombl.SortDescending
		default:
			return fmt.Errorf("unexpected sort order %q, expected asc or desc", sortOrder)
		}

		q.IgnoreRevs, _ = cmd.Flags().GetStringArray("ignore-rev")

		if since, _ := cmd.Flags().GetString("since"); since != "" {
			t, err := gittime.ParseUserDate(since)
			if err != nil {
				return err
			}
			q.Since = &t
		}
		if until, _ := cmd.Flags().GetString("until"); until != "" {
			t, err := gittime.ParseUserDate(until)
			if err != nil {
				return err
			}
			q.Until = &t
		}

		formatName, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")
		useColor := !noColor && isatty.IsTerminal(os.Stdout.Fd())
		formatter, err := format.New(formatName, useColor)
		if err != nil {
			return err
		}

		var log logger.Logger = logger.Discard()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log = logger.New(cmd.ErrOrStderr())
		}
		limit, _ := cmd.Flags().GetInt("limit")

		repoDir, _ := cmd.Flags().GetString("repo")
		repo, err := gitrepo.Open(ctx, repoDir)
		if err != nil {
			return err
		}

		tracer := ombl.New(repo, ombl.Opts{Limit: limit, Logger: log})
		started := time.Now()
		history, err := tracer.Trace(ctx, q)
		if err != nil {
			return err
		}
		log.Info("trace finished", "events", len(history.Events), "in", time.Since(started))

		fmt.Fprintln(cmd.OutOrStdout(), formatter.Format(history))
		return nil
	},
}

func init() {
	rootCmd.Flags().String("repo", ".", "path to the repository")
	rootCmd.Flags().StringP("format", "f", "colored", "output format, one of colored, json, yaml, table")
	rootCmd.Flags().StringP("sort", "s", "asc", "sort order, asc (oldest first) or desc (newest first)")
	rootCmd.Flags().StringArray("ignore-rev", nil, "commit hash or prefix to skip, repeatable")
	rootCmd.Flags().String("since", "", "only commits authored at or after this date")
	rootCmd.Flags().String("until", "", "only commits authored at or before this date")
	rootCmd.Flags().IntP("limit", "l", 0, "maximum number of commits to traverse, 0 for all")
	rootCmd.Flags().Bool("no-color", false, "disable colored output")
	rootCmd.Flags().BoolP("verbose", "v", false, "log traversal details to stderr")
	rootCmd.Flags().String("profile", "", "one of mem, mutex, cpu, block, trace or empty to disable")
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode keeps distinct non-zero codes for the well-known failures so
// scripts can tell them apart.
func exitCode(err error) int {
	switch {
	case errors.Is(err, ombl.ErrRepositoryNotFound):
		return 2
	case errors.Is(err, ombl.ErrRepositoryEmpty):
		return 3
	case errors.Is(err, ombl.ErrFileNotFound):
		return 4
	case errors.Is(err, ombl.ErrInvalidDateFormat):
		return 5
	}
	return 1
}
