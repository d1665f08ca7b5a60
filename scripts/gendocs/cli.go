package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/bfcalc/internal/cli"
	"github.com/leapstack-labs/bfcalc/internal/cli/config"
	"github.com/leapstack-labs/bfcalc/pkg/core"
	"github.com/leapstack-labs/bfcalc/pkg/eval"
	"github.com/leapstack-labs/bfcalc/pkg/token"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes index.md and one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": indexPage(root)}
	for _, cmd := range visibleCommands(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), body, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func indexPage(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", root.Short)
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", dedent(root.Example))

	w.Header(2, "Command Grammar")
	writeGrammar(w)

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		name := InlineCode(cmd.Name())
		if len(cmd.Aliases) > 0 {
			name += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		rows = append(rows, []string{fmt.Sprintf("[%s](%s.md)", name, cmd.Name()), cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlags(w, root.PersistentFlags())

	w.Header(2, "Configuration")
	w.Paragraph(fmt.Sprintf("Settings are read from bfcalc.yaml in the working directory or ~/.bfcalc/, then from %s* environment variables, then from flags. A double underscore in a variable name separates nested keys.", config.EnvPrefix))
	writeConfigKeys(w)

	w.Header(2, "Errors")
	w.Paragraph("A failed command is reported as `Error: <message>` on stderr (or as a JSON object with a `kind` field) and the session continues.")
	writeErrorKinds(w)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Every command succeeded, or the session ended with QUIT"},
		{InlineCode("1"), "At least one batch command failed, or the configuration is invalid"},
	})

	return w.Bytes()
}

func writeGrammar(w *MarkdownWriter) {
	var ops []string
	for _, k := range []token.OpKind{token.Add, token.Subtract, token.Multiply, token.Divide} {
		ops = append(ops, InlineCode(k.String()))
	}
	w.Table([]string{"Form", "Meaning"}, [][]string{
		{InlineCode("<value> (<op> <value>)*"), "Evaluate strictly left to right. Operators: " + strings.Join(ops, " ")},
		{InlineCode(eval.StorePrefix + "<r>"), "Save the last result into register r (a-z)"},
		{InlineCode(eval.QuitCommand), "End the session"},
	})
	w.Paragraph("A value is an integer, a fraction N/D, or a register letter. Words are separated by exactly one space.")
}

func writeConfigKeys(w *MarkdownWriter) {
	var rows [][]string
	for _, k := range config.Keys() {
		def := k.Default
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(k.Key), InlineCode(k.Env), def, k.Description})
	}
	w.Table([]string{"Key", "Environment", "Default", "Description"}, rows)
}

func writeErrorKinds(w *MarkdownWriter) {
	var rows [][]string
	for _, k := range core.Kinds() {
		rows = append(rows, []string{InlineCode(k.String()), k.Label(), k.Description()})
	}
	w.Table([]string{"Kind", "Message prefix", "Raised when"}, rows)
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.CodeBlock("bash", cmd.UseLine())
	if len(cmd.Aliases) > 0 {
		var aliases []string
		for _, a := range cmd.Aliases {
			aliases = append(aliases, InlineCode(a))
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlags(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	return w.Bytes()
}

// writeFlags lists flags with the config key each one overrides.
func writeFlags(w *MarkdownWriter, flags *pflag.FlagSet) {
	known := map[string]bool{}
	for _, k := range config.Keys() {
		known[k.Key] = true
	}

	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}

		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name += ", " + InlineCode("-"+f.Shorthand)
		}

		key := ""
		if keys := f.Annotations[config.ConfigKeyAnnotation]; len(keys) > 0 {
			key = InlineCode(keys[0])
		} else if k := strings.ReplaceAll(f.Name, "-", "_"); known[k] {
			key = InlineCode(k)
		}

		rows = append(rows, []string{name, key, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Config key", "Description"}, rows)
}

// dedent strips the two-space indent cobra examples are written with.
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, "  ")
	}
	return strings.Join(lines, "\n")
}
