package cli

import (
	_ "embed"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

//go:embed license.txt
var licenseText string

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Print license information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, licenseText)

		if deps, _ := cmd.Flags().GetBool("deps"); deps {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				return
			}
			fmt.Fprintln(out, "\nThird-party modules:")
			for _, dep := range info.Deps {
				fmt.Fprintf(out, "  %s %s\n", dep.Path, dep.Version)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(licenseCmd)
	licenseCmd.Flags().Bool("deps", false, "Also list bundled third-party modules")
}
