package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: carousel [flags] [AVATAR] <INPUT>")
	fmt.Fprintln(w, "       carousel <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a text script into PNG carousel cards.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  AVATAR    Avatar image (JPG, PNG, GIF, HEIC), optional")
	fmt.Fprintln(w, "  INPUT     UTF-8 text script, one card or paragraph per line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check system configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default \"dist\")")
	fmt.Fprintln(w, "  -m, --mode <s>            Card mode: lines, document")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --manifest            Also write manifest.json")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cards:")
	fmt.Fprintln(w, "      --viewport <WxH>      Card size (lines 750x1334, document 825x1467)")
	fmt.Fprintln(w, "      --mime-policy <s>     Avatar media type: table, extension")
	fmt.Fprintln(w, "      --seed <n>            Cover gradient seed (0 = random)")
	fmt.Fprintln(w, "      --fill-ratio <f>      Share of the page height to fill (0-1)")
	fmt.Fprintln(w, "      --header-height <f>   Cover header height in px")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --no-highlight        Disable automatic key phrases")
	fmt.Fprintln(w, "      --phrase <s>          Always highlight s (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --template <name>     Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CAROUSEL_CONFIG, CAROUSEL_MODE, CAROUSEL_OUTPUT_DIR, CAROUSEL_STYLE,")
	fmt.Fprintln(w, "  CAROUSEL_TIMEOUT, CAROUSEL_FILL_RATIO (also read from ./.env)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: carousel doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, environment, temp directory, config and card assets.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json    Machine-readable output")
}

// runHelp prints help for a specific command.
// Returns false for an unknown command.
func runHelp(args []string, env *Environment) bool {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return true
	}

	switch args[0] {
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: carousel version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: carousel help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return false
	}
	return true
}
