// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitcat/internal/config"
	"github.com/temirov/gitcat/internal/gitquery"
	"github.com/temirov/gitcat/internal/output"
	"github.com/temirov/gitcat/internal/report"
	"github.com/temirov/gitcat/internal/services/clipboard"
	"github.com/temirov/gitcat/internal/utils"
)

const (
	readmeFlagName       = "readme"
	copyFlagName         = "copy"
	colorFlagName        = "color"
	configFlagName       = "config"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = utils.ApplicationName + " version: %s\n"
	rootUse              = utils.ApplicationName
	rootShortDescription = "Preview your repository as GitHub would see it"
	rootLongDescription  = `gitcat prints the tree of files tracked by git in the current repository,
followed by counts of tracked, untracked and ignored files.
Use --readme to append the tracked README.md and --copy to place the report on the clipboard.`
	rootUsageExample = `  # Show the tracked tree and file counts
  gitcat

  # Include README.md without colors
  gitcat --readme --color never`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = "Write a default configuration file to ./.gitcat.yaml, or to ~/.gitcat/config.yaml with --global."

	readmeFlagDescription  = "show README.md content"
	copyFlagDescription    = "copy the report to the clipboard"
	colorFlagDescription   = "colorize output: auto, always, or never"
	configFlagDescription  = "path to a configuration file"
	versionFlagDescription = "display application version"
	globalFlagDescription  = "write the global configuration file"
	forceFlagDescription   = "overwrite an existing configuration file"

	configurationWrittenFormat  = "configuration written to %s\n"
	notRepositoryMessageFormat  = "%w. Run this command inside a git repo"
	notRepositoryLogMessage     = "repository check failed"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	copyReportErrorFormat       = "copy report to clipboard: %w"
)

// dependencies are the collaborators the commands use; tests replace them.
type dependencies struct {
	logger *zap.Logger
	copier clipboard.Copier
}

// previewOptions stores the flag values of the root command.
type previewOptions struct {
	readme            bool
	copy              bool
	color             string
	configurationPath string
	showVersion       bool
}

// Execute runs the gitcat application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(dependencies{logger: logger, copier: clipboard.NewService()})
	rootCommand.SetArgs(expandToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(context.Background())
}

// createRootCommand builds the root Cobra command.
func createRootCommand(applicationDependencies dependencies) *cobra.Command {
	if applicationDependencies.logger == nil {
		applicationDependencies.logger = zap.NewNop()
	}
	var options previewOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return runPreview(command, options, applicationDependencies)
		},
	}
	registerToggleFlag(rootCommand.Flags(), &options.readme, readmeFlagName, false, readmeFlagDescription)
	registerToggleFlag(rootCommand.Flags(), &options.copy, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().StringVar(&options.color, colorFlagName, string(output.ColorAuto), colorFlagDescription)
	rootCommand.Flags().StringVar(&options.configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return nil
		},
	}
	registerToggleFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runPreview resolves flags against configuration and prints the report.
func runPreview(command *cobra.Command, options previewOptions, applicationDependencies dependencies) error {
	logger := applicationDependencies.logger
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	client := gitquery.NewClient(gitquery.NewExecRunner(workingDirectory, logger))
	if verifyError := client.VerifyInsideRepository(command.Context()); verifyError != nil {
		return notRepositoryError(logger, verifyError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configurationPath,
		Logger:           logger,
	})
	if configurationError != nil {
		return configurationError
	}

	flags := command.Flags()
	includeReadme := applicationConfiguration.ReadmeEnabled()
	if flags.Changed(readmeFlagName) {
		includeReadme = options.readme
	}
	copyReport := applicationConfiguration.CopyEnabled()
	if flags.Changed(copyFlagName) {
		copyReport = options.copy
	}
	colorSetting := applicationConfiguration.Color
	if flags.Changed(colorFlagName) || colorSetting == "" {
		colorSetting = options.color
	}
	colorMode, colorError := output.ParseColorMode(colorSetting)
	if colorError != nil {
		return colorError
	}

	stdout := command.OutOrStdout()
	assembler := report.NewAssembler(client, os.ReadFile, output.NewStyles(stdout, colorMode))

	var rendered bytes.Buffer
	generateError := assembler.Generate(command.Context(), &rendered, report.Options{IncludeReadme: includeReadme})
	if generateError != nil {
		return notRepositoryError(logger, generateError)
	}
	reportText := rendered.String()
	if _, writeError := io.WriteString(stdout, reportText); writeError != nil {
		return writeError
	}

	if copyReport {
		if copyError := applicationDependencies.copier.Copy(reportText); copyError != nil {
			return fmt.Errorf(copyReportErrorFormat, copyError)
		}
	}
	return nil
}

// notRepositoryError replaces a failed repository check with the user-facing message and
// passes every other error through.
func notRepositoryError(logger *zap.Logger, err error) error {
	if !errors.Is(err, gitquery.ErrNotRepository) {
		return err
	}
	logger.Debug(notRepositoryLogMessage, zap.Error(err))
	return fmt.Errorf(notRepositoryMessageFormat, gitquery.ErrNotRepository)
}
