package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ilikepi63/moor"
	"github.com/ilikepi63/moor/config"
)

// statementComplete checks for a terminating ';' outside string literals
// and quoted identifiers. Doubled quotes inside a literal do not end it.
func statementComplete(buf string) bool {
	var quote rune
	for _, r := range buf {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			quote = r
		case ';':
			return true
		}
	}
	return false
}

func printStatements(program *moor.Program, diags []moor.Diagnostic) {
	for _, d := range diags {
		fmt.Println(d.String())
	}
	for _, stmt := range program.Statements {
		fmt.Println(stmt.String())
	}
	if len(program.Statements) != 1 {
		fmt.Printf("(%d statements)\n", len(program.Statements))
	}
}

func printTokens(input string) {
	for _, tok := range moor.Tokenize(input) {
		fmt.Printf("%3d:%-3d %-10s %q\n", tok.Line, tok.Column, tok.Type, tok.Literal)
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".moor_history"
	}
	return filepath.Join(home, ".moor_history")
}

func main() {
	var (
		cfgPath  = flag.String("config", "", "config file path")
		histPath = flag.String("history", defaultHistoryPath(), "history file path")
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
	}
	if cfg.REPL.HistoryFile != "" {
		*histPath = cfg.REPL.HistoryFile
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.REPL.Prompt,
		HistoryFile:     *histPath,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	fmt.Println("type \\help for help")

	var buf strings.Builder
	showTokens := false

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buf.Len() > 0 {
				buf.Reset()
				rl.SetPrompt(cfg.REPL.Prompt)
				continue
			}
			fmt.Println("^C")
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, "\\") {
			switch line {
			case "\\q":
				return
			case "\\tokens":
				showTokens = !showTokens
				if showTokens {
					fmt.Println("token dump on")
				} else {
					fmt.Println("token dump off")
				}
			case "\\help":
				fmt.Println(`meta commands:
  \q        quit
  \tokens   toggle token dump
  \help     show help

sql:
  end statements with ';' (multiline input is supported)`)
			default:
				fmt.Printf("unknown command: %s\n", line)
			}
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(line)

		if !statementComplete(buf.String()) {
			rl.SetPrompt("...> ")
			continue
		}

		input := buf.String()
		buf.Reset()
		rl.SetPrompt(cfg.REPL.Prompt)

		if showTokens {
			printTokens(input)
		}
		program, diags := moor.ParseAll(input)
		printStatements(program, diags)
	}
}
