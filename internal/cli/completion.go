package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/timeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for timeline.

To load completions:

Bash:
  $ source <(timeline completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ timeline completion bash > /etc/bash_completion.d/timeline
  # macOS:
  $ timeline completion bash > $(brew --prefix)/etc/bash_completion.d/timeline

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ timeline completion zsh > "${fpath[1]}/_timeline"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ timeline completion fish | source

  # To load completions for each session, execute once:
  $ timeline completion fish > ~/.config/fish/completions/timeline.fish

PowerShell:
  PS> timeline completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> timeline completion powershell > timeline.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeDocument completes the document argument with files that Load
// can read.
func completeDocument(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return timeline.Extensions(), cobra.ShellCompDirectiveFilterFileExt
}

// completeJSONPath completes the --json_save value with .json files.
func completeJSONPath(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
