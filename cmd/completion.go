package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for showcase.

To load completions:

Bash:

  $ source <(showcase completion bash)

Zsh:

  $ showcase completion zsh > "${fpath[1]}/_showcase"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ showcase completion fish | source
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

// modelFiles completes the model file argument
func modelFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"stl", "glb", "gltf", "scad"}, cobra.ShellCompDirectiveFilterFileExt
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{viewCmd, guiCmd, recordCmd, infoCmd, simulateCmd} {
		c.ValidArgsFunction = modelFiles
	}

}
