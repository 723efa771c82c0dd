package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/logutils"
	"github.com/teris-io/cli"

	"cparse.dev/ccore/pkg/parser"
	"cparse.dev/ccore/pkg/token"
)

var Description = strings.ReplaceAll(`
ccparse parses one or more preprocessed C99+GNU source files into an
abstract syntax tree and dumps it as indented JSON. It does not invoke a
preprocessor: inputs must already be free of directives.
`, "\n", " ")

var CCParse = cli.New(Description).
	WithArg(cli.NewArg("inputs", "The preprocessed .c source files to parse").
		AsOptional().WithType(cli.TypeString)).
	WithOption(cli.NewOption("builtin-typedef", "Comma-separated typedef names known before parsing starts").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("start-id", "The first fresh node id to assign (default 1)").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("debug", "Lower the log level to DEBUG").
		WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	filter := &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "ERROR"},
		MinLevel: logutils.LogLevel("INFO"),
		Writer:   os.Stderr,
	}
	if _, enabled := options["debug"]; enabled {
		filter.MinLevel = logutils.LogLevel("DEBUG")
	}
	log.SetOutput(filter)

	if len(args) < 1 {
		log.Printf("[ERROR] no input files given, use --help\n")
		return -1
	}

	var builtins []string
	if raw, ok := options["builtin-typedef"]; ok && raw != "" {
		builtins = strings.Split(raw, ",")
	}

	startID := uint64(1)
	if raw, ok := options["start-id"]; ok && raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			log.Printf("[ERROR] invalid --start-id %q: %s\n", raw, err)
			return -1
		}
		startID = id
	}

	units := make(map[string]interface{}, len(args))
	for _, input := range args {
		log.Printf("[DEBUG] parsing %s\n", input)

		src, err := os.ReadFile(input)
		if err != nil {
			log.Printf("[ERROR] unable to open input file: %s\n", err)
			return -1
		}

		start := token.Position{File: input, Line: 1, Column: 1}
		tu, err := parser.Parse(input, src, start, builtins, startID)
		if err != nil {
			log.Printf("[ERROR] %s: %s\n", input, err)
			return -1
		}
		units[input] = tu
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(units); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: unable to encode AST: %s\n", err)
		return -1
	}
	return 0
}

func main() { os.Exit(CCParse.Run(os.Args, os.Stdout)) }
