package stamp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stamp-dev/stamp/internal/version"
	"github.com/stamp-dev/stamp/pkg/ui"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log.Info().Str("templates_root", cfg.TemplatesRoot).Msg("Listing templates")

			templates, err := newCatalog(cfg).GetAll()
			if err != nil {
				return err
			}

			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}

			switch f.Resolve(os.Stdout) {
			case ui.FormatJSON:
				type entry struct {
					Name        string `json:"name"`
					Description string `json:"description,omitempty"`
					Version     string `json:"version,omitempty"`
					Variables   int    `json:"variables"`
				}
				entries := make([]entry, 0, len(templates))
				for _, t := range templates {
					entries = append(entries, entry{t.Name, t.Description, t.Version, len(t.Variables)})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)

			case ui.FormatTerminal:
				if len(templates) == 0 {
					fmt.Println(MsgNoTemplates)
					return nil
				}
				data := pterm.TableData{{"NAME", "VERSION", "DESCRIPTION"}}
				for _, t := range templates {
					data = append(data, []string{t.Name, t.Version, t.Description})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(data).Render()

			default:
				if len(templates) == 0 {
					fmt.Println(MsgNoTemplates)
					return nil
				}
				for _, t := range templates {
					fmt.Println(t.Name)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", MsgFlagFormat)

	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		vars        []string
		contextFile string
		outFile     string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:               "render <template>",
		Short:             MsgRenderShort,
		Long:              MsgRenderLong,
		Example:           MsgRenderExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if strict {
				cfg.Render.Strict = true
			}

			ctx, err := buildContext(contextFile, vars)
			if err != nil {
				return err
			}

			name := args[0]
			log.Info().Str("template", name).Bool("strict", cfg.Render.Strict).Msg("Rendering template")

			result, err := newCatalog(cfg).Substitute(name, ctx, nil)
			if err != nil {
				return err
			}

			printValidation(result.Validation.Errors, result.Validation.Warnings)
			if !result.Validation.Valid {
				return fmt.Errorf("template '%s' is invalid", name)
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, []byte(result.RenderedText), 0o644); err != nil {
					return fmt.Errorf(MsgErrWriteOutput, err)
				}
				fmt.Fprintf(os.Stderr, MsgWroteOutput, outFile)
				return nil
			}

			fmt.Print(result.RenderedText)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, MsgFlagVar)
	cmd.Flags().StringVarP(&contextFile, "context", "c", "", MsgFlagContext)
	cmd.Flags().StringVarP(&outFile, "out", "o", "", MsgFlagOut)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)

	return cmd
}

func newValidateCmd() *cobra.Command {
	var (
		vars        []string
		contextFile string
	)

	cmd := &cobra.Command{
		Use:               "validate <template>",
		Short:             MsgValidateShort,
		Long:              MsgValidateLong,
		Example:           MsgValidateExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, err := buildContext(contextFile, vars)
			if err != nil {
				return err
			}

			name := args[0]

			// Substitute's validation already covers block balance, name
			// syntax and the declared schema; the rendered text is discarded.
			result, err := newCatalog(cfg).Substitute(name, ctx, nil)
			if err != nil {
				return err
			}

			printValidation(result.Validation.Errors, result.Validation.Warnings)
			if !result.Validation.Valid {
				return fmt.Errorf("template '%s' failed validation", name)
			}

			fmt.Printf(MsgValidTemplate, name)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, MsgFlagVar)
	cmd.Flags().StringVarP(&contextFile, "context", "c", "", MsgFlagContext)

	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "info <template>",
		Short:             MsgInfoShort,
		Long:              MsgInfoLong,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			t, err := newCatalog(cfg).Get(args[0])
			if err != nil {
				return err
			}

			title := ui.GetStyle("Title")
			key := ui.GetStyle("Key")

			fmt.Println(title.Render(t.Name))
			if t.Description != "" {
				fmt.Println(t.Description)
			}
			if t.Version != "" {
				fmt.Printf("%s %s\n", key.Render("Version:"), t.Version)
			}
			if t.Path != "" {
				fmt.Printf("%s %s\n", key.Render("Path:"), t.Path)
			}

			if len(t.Variables) > 0 {
				fmt.Println()
				data := pterm.TableData{{"VARIABLE", "TYPE", "REQUIRED", "DEFAULT"}}
				for _, v := range t.Variables {
					data = append(data, []string{v.Name, string(v.Type), strconv.FormatBool(v.Required), v.Default})
				}
				if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
					return err
				}
			}

			if t.Path != "" {
				if readme, err := os.ReadFile(filepath.Join(t.Path, "README.md")); err == nil {
					fmt.Println()
					fmt.Print(ui.NewMarkdownRenderer().Render(string(readme)))
				}
			}

			return nil
		},
	}
}

// newCacheCmd compiles every catalog template and reports the cache
// counters. Clear and sweep are API-level operations; a fresh process
// starts with an empty cache, so they have no CLI surface.
func newCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cache",
		Short:   MsgCacheShort,
		Long:    MsgCacheLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			m := newCatalog(cfg)
			templates, err := m.GetAll()
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Println(MsgCacheEmpty)
				return nil
			}

			for _, t := range templates {
				if _, err := m.GetOrCreateCompiled(t.Name); err != nil {
					return err
				}
			}

			stats := m.CacheStats()
			data := pterm.TableData{
				{"Compiled templates", strconv.Itoa(stats.Size)},
				{"Hits", strconv.FormatUint(stats.Hits, 10)},
				{"Misses", strconv.FormatUint(stats.Misses, 10)},
				{"Hit rate", fmt.Sprintf("%.0f%%", stats.HitRate*100)},
			}
			return pterm.DefaultTable.WithData(data).Render()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stamp %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// printValidation writes the validation report to stderr so it never mixes
// with rendered output on stdout.
func printValidation(errs, warnings []string) {
	if len(errs) > 0 {
		style := ui.GetStyle("Error")
		fmt.Fprintln(os.Stderr, style.Render(MsgErrorsHeader))
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", style.Render(e))
		}
	}
	if len(warnings) > 0 {
		style := ui.GetStyle("Warning")
		fmt.Fprintln(os.Stderr, style.Render(MsgWarningsHeader))
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "  %s\n", style.Render(w))
		}
	}
}
