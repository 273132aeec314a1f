package stamp

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A template-driven project scaffolding tool"
	MsgListShort       = "List all templates in the catalog"
	MsgListLong        = "List displays all templates discovered under the configured templates root."
	MsgRenderShort     = "Render a template against a set of variables"
	MsgValidateShort   = "Validate a template's syntax and variable schema"
	MsgInfoShort       = "Show a template's metadata and documentation"
	MsgCacheShort      = "Inspect the template compilation cache"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNoTemplates    = "No templates found."
	MsgValidTemplate  = "Template '%s' is valid.\n"
	MsgErrorsHeader   = "Errors:"
	MsgWarningsHeader = "Warnings:"
	MsgWroteOutput    = "Wrote %s\n"
	MsgCacheEmpty     = "The catalog has no templates to compile."

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrReadContext  = "failed to read context file: %w"
	MsgErrParseContext = "failed to parse context file: %w"
	MsgErrWriteOutput  = "failed to write output file: %w"
	MsgErrBadVar       = "invalid --var %q, expected name=value"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagVar     = "Set a template variable as name=value (repeatable, dots nest)"
	MsgFlagContext = "YAML file providing the render context"
	MsgFlagOut     = "Write rendered output to a file instead of stdout"
	MsgFlagStrict  = "Fail on the first missing variable"
	MsgFlagFormat  = "Output format: auto, term, text or json"
)

// Long messages
const (
	MsgRootLong = `stamp renders project templates.

Templates live in directories under the templates root, each with a
template.toml describing its variables and a template.tmpl body. stamp
substitutes {{variables}}, expands {{#if}}, {{#unless}} and {{#each}}
blocks, and reports validation problems instead of failing the render.`

	MsgRenderLong = `Render substitutes the given variables into the named template and
prints the result. Variables come from --context (a YAML file) and
--var flags; --var wins when both set the same name.

Missing variables render as empty text and produce warnings; pass
--strict to fail on the first missing variable instead.`

	MsgValidateLong = `Validate checks the named template without rendering it to a file:
block balance, variable name syntax, and the declared schema. When a
context is given, it also reports which variables would be missing.`

	MsgInfoLong = `Info prints a template's metadata, declared variables and, when the
template directory contains a README.md, its rendered documentation.`

	MsgCacheLong = `Cache compiles every template in the catalog once and reports the
compilation cache statistics. A template that fails to compile keeps
its unparsed text, so this doubles as a catalog-wide compile check.`

	MsgRenderExample = `  stamp render webapp --var project_name=shop --var private=true
  stamp render webapp --context answers.yaml --out README.md`

	MsgValidateExample = `  stamp validate webapp
  stamp validate webapp --context answers.yaml`

	MsgCompletionLong = `Generate a shell completion script for stamp.

Load it in your current session or install it in your shell's
completion directory. See each shell's documentation for details.`
)

// MsgUsageTemplate renders help with bold section headers.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
