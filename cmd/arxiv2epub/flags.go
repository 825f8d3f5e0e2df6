package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds EPUB stylesheet flags.
type styleFlags struct {
	style   string // Embedded style name or CSS file path
	noStyle bool   // Use pandoc's default stylesheet
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common       commonFlags
	output       string
	filename     string
	metadataName bool
	metadataSet  bool // --metadata-name given, either value
	pandoc       string
	timeout      string
	style        styleFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.BoolVar(&f.noStyle, "no-style", false, "use pandoc's default stylesheet")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Errors (including flag.ErrHelp) are returned unprinted.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.filename, "filename", "f", "", "output filename without extension")
	fs.BoolVarP(&f.metadataName, "metadata-name", "m", false, "name the file \"<Author> <Year> - <Title>\"")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc binary")
	fs.StringVar(&f.timeout, "timeout", "", "HTTP timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.metadataSet = fs.Changed("metadata-name")

	return f, fs.Args(), nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
	pandoc string
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &doctorFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc binary to check")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
