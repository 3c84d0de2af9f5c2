package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/lito"
	"github.com/midbel/lito/eval"
	"github.com/peterh/liner"
	"go.uber.org/zap"
)

const (
	prompt      = "> "
	historyFile = ".lito_history"
)

func main() {
	var (
		scan    = flag.Bool("s", false, "dump tokens instead of evaluating")
		parse   = flag.Bool("p", false, "display the tree instead of evaluating")
		session = flag.String("session", "", "persist top level bindings to the given file")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		os.Exit(repl(*session))
	}

	r, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer r.Close()

	switch {
	case *scan:
		err = scanFile(r)
	case *parse:
		err = parseFile(r)
	default:
		err = evalFile(r)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scanFile(r io.Reader) error {
	scan := eval.Scan(r)
	for {
		tok := scan.Scan()
		if tok.Type == eval.EOF {
			break
		}
		fmt.Println(tok)
	}
	return nil
}

func parseFile(r io.Reader) error {
	parser := eval.NewParser(r)
	for {
		expr, err := parser.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		eval.Fdisplay(os.Stdout, expr)
	}
	return nil
}

func evalFile(r io.Reader) error {
	ip := lito.New()
	res, err := ip.Run(r)
	if err != nil {
		return err
	}
	if res != nil {
		fmt.Println(res)
	}
	return nil
}

func repl(session string) int {
	// the repl reports failures on its own prompt
	ip := lito.New(lito.WithLogger(zap.NewNop()))

	var store *lito.Store
	if session != "" {
		st, err := lito.OpenStore(session)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer st.Close()
		if err := st.Load(ip.Define); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		store = st
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" {
			break
		}
		res, err := ip.RunString(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if res != nil {
			fmt.Println(res)
		}
		ln.AppendHistory(line)
		if store != nil {
			if err := saveSession(store, ip); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
	return 0
}

func saveSession(store *lito.Store, ip *lito.Interpreter) error {
	for ident, obj := range ip.Definitions() {
		if err := store.Put(ident, obj); err != nil {
			return err
		}
	}
	return nil
}
