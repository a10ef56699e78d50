package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for strut and write it to stdout.

Load it directly for the current session:

  $ source <(strut completion bash)
  $ strut completion fish | source
  PS> strut completion powershell | Out-String | Invoke-Expression

Or install it permanently, e.g.:

  $ strut completion bash > /etc/bash_completion.d/strut
  $ strut completion zsh > "${fpath[1]}/_strut"
  $ strut completion fish > ~/.config/fish/completions/strut.fish

Zsh users need compinit enabled ("autoload -U compinit; compinit" in ~/.zshrc).
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
