package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: arxiv2epub [convert] <id-or-url> [flags]")
	fmt.Fprintln(w, "       arxiv2epub <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert an arXiv paper to EPUB (default)")
	fmt.Fprintln(w, "  doctor     Check pandoc and system requirements")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'arxiv2epub help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: arxiv2epub convert <id-or-url> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Download the ar5iv rendering of an arXiv paper and convert it to EPUB.")
	fmt.Fprintln(w, "Images and tables are removed; formulas are kept as TeX.")
	fmt.Fprintln(w, "Nothing is downloaded if the output file already exists.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  id-or-url    arXiv id (2501.00601) or URL (https://arxiv.org/abs/2501.00601)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: current directory)")
	fmt.Fprintln(w, "  -f, --filename <name>     Output filename without .epub (default: the id)")
	fmt.Fprintln(w, "  -m, --metadata-name       Name the file \"<Author> <Year> - <Title>\"")
	fmt.Fprintln(w, "                            (--metadata-name=false overrides the config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --style <name|path>   EPUB stylesheet: embedded name or CSS file")
	fmt.Fprintln(w, "      --no-style            Use pandoc's default stylesheet")
	fmt.Fprintln(w, "      --pandoc <path>       pandoc binary (default: pandoc on PATH)")
	fmt.Fprintln(w, "      --timeout <duration>  HTTP timeout, e.g. 30s, 2m (default: none)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ARXIV2EPUB_CONFIG         Config file name or path")
	fmt.Fprintln(w, "  ARXIV2EPUB_OUTPUT_DIR     Default output directory")
	fmt.Fprintln(w, "  ARXIV2EPUB_PANDOC         pandoc binary")
	fmt.Fprintln(w, "  ARXIV2EPUB_TIMEOUT        HTTP timeout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general, 2 usage/config, 3 file system,")
	fmt.Fprintln(w, "  4 download, 5 arXiv catalog, 6 pandoc")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: arxiv2epub doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that pandoc is installed and the temp directory is writable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w, "      --pandoc <path>       pandoc binary to check")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The binary is taken from --pandoc, ARXIV2EPUB_PANDOC, pandoc.path")
	fmt.Fprintln(w, "in the config, then pandoc on PATH, the same order convert uses.")
}

// runHelp prints help for a topic and returns an exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: arxiv2epub version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the version and exit.")
	case "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown help topic: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
