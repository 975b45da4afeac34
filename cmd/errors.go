package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/hdrplay/averror"
)

var errorsCmd = &cobra.Command{
	Use:   "errors [code]",
	Short: "List libav error codes or explain one",
	Long: `errors without arguments lists every tagged libav error code. Given a
decimal return value, a macro name such as AVERROR_EOF or an errno spelling
such as AVERROR(EAGAIN), it prints the matching code and message.`,
	// Every libav code is negative and would otherwise parse as a flag.
	DisableFlagParsing: true,
	Args:               cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
			return cmd.Help()
		}

		w := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, code := range averror.All() {
				printCode(w, code)
			}
			return nil
		}

		code, err := averror.Parse(args[0])
		if err != nil {
			return err
		}
		printCode(w, code)
		return nil
	},
}

func printCode(w io.Writer, code averror.Code) {
	fmt.Fprintf(w, "%11d  %-32s %s\n", int32(code), code.Name(), code.Error())
}

func init() {
	RootCmd.AddCommand(errorsCmd)
}
