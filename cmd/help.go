package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	flagGroupAnnotation = "group"
	generalGroup        = "General Options"
)

// groupedUsage prints the flags of cmd grouped by their help group
// annotation, one coloured table per group in declaration order.
func groupedUsage(cmd *cobra.Command) error {
	w := cmd.OutOrStderr()
	fmt.Fprintf(w, "Usage: %s\n", cmd.UseLine())
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w, "\n"+colorText(hiYellow, "Commands:"))
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() {
				continue
			}
			fmt.Fprintf(w, "\t%s %s\n", colorText(cyan,
				fmt.Sprintf("%-*s", sub.NamePadding(), sub.Name())),
				colorText(green, sub.Short))
		}
	}
	fmt.Fprintln(w)

	helpGroupLists := make(map[string][]*pflag.Flag)
	var helpGroupOrder []string
	var longestFlagName, longestHelpMessage, longestDefaultVal int

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		flagGroup := generalGroup
		if groups := f.Annotations[flagGroupAnnotation]; len(groups) > 0 {
			flagGroup = groups[0]
		}

		if _, ok := helpGroupLists[flagGroup]; !ok {
			helpGroupOrder = append(helpGroupOrder, flagGroup)
		}
		helpGroupLists[flagGroup] = append(helpGroupLists[flagGroup], f)

		longestFlagName = max(longestFlagName, len(f.Name)+1)
		longestHelpMessage = max(longestHelpMessage, len(f.Usage)+1)
		longestDefaultVal = max(longestDefaultVal, len(defaultString(f))+1)
	})

	for _, group := range helpGroupOrder {
		fmt.Fprint(w, colorText(hiYellow, group+":\n"))
		for _, f := range helpGroupLists[group] {
			printFormattedFlag(w, f, longestFlagName, longestHelpMessage,
				longestDefaultVal)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printFormattedFlag(w io.Writer, f *pflag.Flag, maxFlagName, maxHelpText,
	maxDef int) {
	defaultValue := defaultString(f)
	defaultPadding := strings.Repeat(" ", maxDef-len(defaultValue))

	helpPadding := strings.Repeat(" ", maxHelpText-len(f.Usage))
	defaultTxt := colorText(darkPurple, fmt.Sprintf("%sDefault: %s%s",
		helpPadding, defaultPadding, defaultValue))

	flagPadding := strings.Repeat(" ", maxFlagName-len(f.Name))
	flagName := colorText(cyan, fmt.Sprintf("--%s%s", f.Name, flagPadding))

	fmt.Fprintf(w, "\t%s %s   %s\n", flagName, colorText(green, f.Usage),
		defaultTxt)
}

func defaultString(f *pflag.Flag) string {
	if f.DefValue == "" {
		return "\"\""
	}
	return f.DefValue
}

// addFlagToHelpGroup files an already defined flag of fs under group.
func addFlagToHelpGroup(fs *pflag.FlagSet, flagName, group string) {
	f := fs.Lookup(flagName)
	if f == nil {
		panic("unknown flag: " + flagName)
	}
	if f.Annotations == nil {
		f.Annotations = map[string][]string{}
	}
	f.Annotations[flagGroupAnnotation] = []string{group}
}

type color string

const (
	cyan       color = "\033[96m"
	darkPurple color = "\033[38;5;55m"
	hiYellow   color = "\033[93m"
	green      color = "\033[92m"
	red        color = "\033[91m"
)

const reset = "\033[0m"

func colorText(c color, text string) string { return string(c) + text + reset }
