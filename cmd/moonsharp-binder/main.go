// moonsharp-binder — generate statically-typed C# accessors for Lua scripts.
//
// Commands:
//
//	generate   extract schemas under --root and write one C# bindings file
//	check      extract only and report diagnostics, no output file
//	inspect    interactive schema explorer over a script directory
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	binder "github.com/JohnVonDrashek/moonsharp-binder"
)

const (
	appName     = "moonsharp-binder"
	historyFile = ".moonsharp_binder_history"
	promptMain  = "==> "
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	// Optional .env bootstrap; a missing file is not an error.
	_ = godotenv.Load()
	log.SetFlags(0)
	log.SetPrefix(appName + ": ")

	app := &cli.App{
		Name:  appName,
		Usage: "generate statically-typed C# accessors for Lua script globals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Usage:   "directory scanned for *.lua scripts",
				Value:   ".",
				EnvVars: []string{"MOONSHARP_BINDER_ROOT"},
			},
			&cli.StringFlag{
				Name:    "namespace",
				Usage:   "namespace for the generated classes",
				Value:   "ScriptBindings",
				EnvVars: []string{"MOONSHARP_BINDER_NAMESPACE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "extract schemas and write the bindings file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Usage:   "output path for the generated C# file",
						Value:   "ScriptBindings.g.cs",
						EnvVars: []string{"MOONSHARP_BINDER_OUT"},
					},
				},
				Action: cmdGenerate,
			},
			{
				Name:   "check",
				Usage:  "extract schemas and report diagnostics only",
				Action: cmdCheck,
			},
			{
				Name:   "inspect",
				Usage:  "interactively explore extracted schemas",
				Action: cmdInspect,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newGenerator(c *cli.Context) (*binder.Generator, error) {
	return binder.NewGenerator(binder.Options{
		Root:      c.String("root"),
		Namespace: c.String("namespace"),
	})
}

func cmdGenerate(c *cli.Context) error {
	gen, err := newGenerator(c)
	if err != nil {
		return err
	}

	out, err := os.Create(c.String("out"))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	diags := gen.Run(out)
	return reportDiagnostics(diags)
}

func cmdCheck(c *cli.Context) error {
	gen, err := newGenerator(c)
	if err != nil {
		return err
	}
	diags := gen.Run(nil)
	return reportDiagnostics(diags)
}

// reportDiagnostics prints every diagnostic to stderr and fails the command
// only when an error-severity diagnostic is present.
func reportDiagnostics(diags []binder.Diagnostic) error {
	for _, d := range diags {
		line := d.String()
		switch d.Severity {
		case binder.SevError:
			line = red(line)
		case binder.SevWarning:
			line = green(line)
		}
		fmt.Fprintln(os.Stderr, line)
	}
	if binder.HasErrors(diags) {
		return cli.Exit("generation finished with errors", 1)
	}
	return nil
}

// -----------------------------------------------------------------------------
// inspect
// -----------------------------------------------------------------------------

func cmdInspect(c *cli.Context) error {
	root := c.String("root")
	gen, err := newGenerator(c)
	if err != nil {
		return err
	}

	files, err := binder.DiscoverScripts(root)
	if err != nil {
		return err
	}
	byStem := map[string]string{}
	stems := make([]string, 0, len(files))
	for _, f := range files {
		stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		if _, dup := byStem[stem]; !dup {
			stems = append(stems, stem)
		}
		byStem[stem] = f
	}
	sort.Strings(stems)

	fmt.Printf("%s inspect — %d script(s) under %s\n", appName, len(stems), root)
	fmt.Println("Enter a script name to dump its schema, :list to list, :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) (out []string) {
		for _, s := range stems {
			if strings.HasPrefix(s, line) {
				out = append(out, s)
			}
		}
		return out
	})

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		input, err := ln.Prompt(promptMain)
		if err != nil {
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)
		switch {
		case input == "":
			continue
		case input == ":quit":
			return nil
		case input == ":list":
			for _, s := range stems {
				fmt.Println(blue(s))
			}
			continue
		case strings.HasPrefix(input, ":"):
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		path, ok := byStem[input]
		if !ok {
			fmt.Fprintln(os.Stderr, red("no such script: "+input))
			continue
		}
		res, err := gen.ParseFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		printSchema(res)
		ln.AppendHistory(input)
	}
}

func printSchema(res binder.ParseResult) {
	fmt.Printf("%s (%s)\n", blue(binder.BindingsClassName(res.Name)), res.Name)
	for _, g := range res.Globals {
		printGlobal(g)
	}
	for _, fn := range res.Functions {
		params := make([]string, len(fn.Parameters))
		for i, p := range fn.Parameters {
			params[i] = p.Name
			if p.HasExplicit {
				params[i] += ": " + p.ExplicitType.String()
			}
		}
		sig := fmt.Sprintf("  function %s(%s)", fn.Name, strings.Join(params, ", "))
		if fn.HasReturn {
			sig += " -> " + fn.ReturnType.String()
		}
		fmt.Println(green(sig))
	}
	for _, d := range res.Errors {
		fmt.Fprintln(os.Stderr, red("  "+d.String()))
	}
}

func printGlobal(g binder.Global) {
	fmt.Printf("  %s: %s\n", g.Name, g.EffectiveType())
	printFields(g.TableFields, "    ")
}

func printFields(fields []binder.TableField, indent string) {
	for _, f := range fields {
		fmt.Printf("%s%s: %s\n", indent, f.Name, f.EffectiveType())
		printFields(f.NestedFields, indent+"  ")
	}
}
