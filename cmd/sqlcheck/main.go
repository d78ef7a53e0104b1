// Command sqlcheck parses SQL files and reports syntax problems. Statements
// that fail to parse are reported individually; the rest of the file is
// still checked.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilikepi63/moor"
	"github.com/ilikepi63/moor/config"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "config file path")
		failFast = flag.Bool("fail-fast", false, "stop after the first file with errors")
		dumpAST  = flag.Bool("dump", false, "print the parsed statements")
		summary  = flag.Bool("summary", false, "print per-file statement and table summary")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		if cfg.Check.FailFast {
			*failFast = true
		}
		if cfg.Check.DumpAST {
			*dumpAST = true
		}
	}

	paths := flag.Args()
	for _, pattern := range cfg.Check.Inputs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "glob %s: %v\n", pattern, err)
			os.Exit(1)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: sqlcheck [flags] file.sql ...")
		os.Exit(2)
	}

	exitCode := 0
	for _, path := range paths {
		errCount, err := checkFile(path, *dumpAST, *summary)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}
		if errCount > 0 {
			exitCode = 1
			if *failFast {
				break
			}
		}
	}
	os.Exit(exitCode)
}

// checkFile parses one file and returns the number of dropped statements.
func checkFile(path string, dumpAST, summary bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	program, diags := moor.ParseAll(string(data))

	errCount := 0
	for _, d := range diags {
		if !d.Warning {
			errCount++
		}
		fmt.Printf("%s: %s\n", path, d.String())
	}

	if dumpAST {
		for _, stmt := range program.Statements {
			fmt.Println(stmt.String())
		}
	}

	if summary {
		insp := moor.NewInspector(program)
		tables := insp.FindTableNames()
		fmt.Printf("%s: %d statements, %d dropped", path, len(program.Statements), errCount)
		if len(tables) > 0 {
			fmt.Printf(", tables: %s", strings.Join(tables, ", "))
		}
		fmt.Println()
	}

	return errCount, nil
}
