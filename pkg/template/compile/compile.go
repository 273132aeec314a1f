// Package compile turns a template body into a reusable renderer and
// memoizes that work in a TTL cache keyed by a hash of the body text.
//
// Compilation parses block directives ({{#if}}, {{#unless}}, {{#each}})
// into a segment tree once; rendering walks the tree against a context,
// evaluating conditions and substituting placeholders in the surviving
// branches.
package compile

import (
	"regexp"
	"strings"

	"github.com/stamp-dev/stamp/pkg/template"
	"github.com/stamp-dev/stamp/pkg/template/engine"
	"github.com/stamp-dev/stamp/pkg/template/expression"
)

// Compiled is a reusable renderer produced once per distinct template body.
// The same Compiled may be rendered with different engines: options are a
// render-time concern, so the cache stays keyed by body text alone.
type Compiled struct {
	nodes []node
}

// defaultEngine backs Render calls that carry no engine of their own.
var defaultEngine = engine.New(engine.Options{})

// Render renders the compiled template against a context with default
// engine options.
func (c *Compiled) Render(ctx template.Context) string {
	return c.RenderWith(defaultEngine, ctx)
}

// RenderWith renders the compiled template using the given engine for
// placeholder substitution, so MissingDefault and custom formatters apply
// inside block branches. Strict mode is ignored here: a branch render
// cannot fail, and missing values are the validation pass's job.
func (c *Compiled) RenderWith(e *engine.Engine, ctx template.Context) string {
	if e == nil {
		e = defaultEngine
	}
	e = e.Lenient()

	var b strings.Builder
	renderNodes(c.nodes, e, ctx, &b)
	return b.String()
}

// BranchRenderer renders one branch of a block directive.
type BranchRenderer func(ctx template.Context) string

// DirectiveHandler executes one block directive. Every handler receives
// both branch renderers even if it ignores one, so the contract stays
// uniform across directives.
type DirectiveHandler func(args string, ctx template.Context, renderTrue, renderFalse BranchRenderer) string

// directiveHandlers is the explicit ordered mapping from directive name to
// handler. Adding a directive means adding an entry here; there is no
// reflection or registration indirection.
var directiveHandlers = []struct {
	name   string
	handle DirectiveHandler
}{
	{"if", handleIf},
	{"unless", handleUnless},
	{"each", handleEach},
}

func handlerFor(name string) DirectiveHandler {
	for _, h := range directiveHandlers {
		if h.name == name {
			return h.handle
		}
	}
	return nil
}

func handleIf(args string, ctx template.Context, renderTrue, renderFalse BranchRenderer) string {
	if expression.Evaluate(args, ctx) {
		return renderTrue(ctx)
	}
	return renderFalse(ctx)
}

func handleUnless(args string, ctx template.Context, renderTrue, renderFalse BranchRenderer) string {
	if expression.Evaluate(args, ctx) {
		return renderFalse(ctx)
	}
	return renderTrue(ctx)
}

// handleEach iterates the list the args path resolves to, rendering the true
// branch once per element with iteration metadata merged into scope. A
// missing or empty list renders the false branch.
func handleEach(args string, ctx template.Context, renderTrue, renderFalse BranchRenderer) string {
	value, ok := template.Lookup(ctx, args)
	if !ok {
		return renderFalse(ctx)
	}

	items := toSlice(value)
	if len(items) == 0 {
		return renderFalse(ctx)
	}

	enriched := engine.EnrichArray(items)

	var b strings.Builder
	for i, item := range items {
		child := make(template.Context, len(ctx)+4)
		for k, v := range ctx {
			child[k] = v
		}
		if scope, ok := enriched[i].(map[string]interface{}); ok {
			for k, v := range scope {
				child[k] = v
			}
		}
		child["this"] = item
		b.WriteString(renderTrue(child))
	}
	return b.String()
}

func toSlice(value interface{}) []interface{} {
	switch v := value.(type) {
	case []interface{}:
		return v
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items
	case []map[string]interface{}:
		items := make([]interface{}, len(v))
		for i, m := range v {
			items[i] = m
		}
		return items
	default:
		return nil
	}
}

// Compile parses the body into a segment tree and returns a renderer over
// it. Compilation itself never fails; structurally broken directives render
// as literal text, matching what the syntax validator reports separately.
func Compile(body string) *Compiled {
	return &Compiled{nodes: parseNodes(body)}
}

// node is one segment of a compiled template.
type node interface {
	render(e *engine.Engine, ctx template.Context, b *strings.Builder)
}

// textNode is literal text that may still contain placeholders.
type textNode string

func (t textNode) render(e *engine.Engine, ctx template.Context, b *strings.Builder) {
	// e is always lenient here, so Substitute cannot fail.
	result, _ := e.Substitute(string(t), ctx, nil)
	b.WriteString(result.RenderedText)
}

// blockNode is a parsed block directive with both branches.
type blockNode struct {
	directive string
	args      string
	trueBody  []node
	falseBody []node
}

func (n *blockNode) render(e *engine.Engine, ctx template.Context, b *strings.Builder) {
	handler := handlerFor(n.directive)
	if handler == nil {
		return
	}

	renderTrue := func(c template.Context) string {
		var sb strings.Builder
		renderNodes(n.trueBody, e, c, &sb)
		return sb.String()
	}
	renderFalse := func(c template.Context) string {
		var sb strings.Builder
		renderNodes(n.falseBody, e, c, &sb)
		return sb.String()
	}

	b.WriteString(handler(n.args, ctx, renderTrue, renderFalse))
}

func renderNodes(nodes []node, e *engine.Engine, ctx template.Context, b *strings.Builder) {
	for _, n := range nodes {
		n.render(e, ctx, b)
	}
}

var openTagPattern = regexp.MustCompile(`\{\{#(if|unless|each)\s+([^{}]*?)\s*\}\}`)

// parseNodes splits a body into literal text and block nodes, recursing into
// block branches. An opening tag with no matching close is kept as literal
// text rather than failing the parse.
func parseNodes(body string) []node {
	var nodes []node

	for body != "" {
		loc := openTagPattern.FindStringSubmatchIndex(body)
		if loc == nil {
			nodes = append(nodes, textNode(body))
			break
		}

		if loc[0] > 0 {
			nodes = append(nodes, textNode(body[:loc[0]]))
		}

		directive := body[loc[2]:loc[3]]
		args := strings.TrimSpace(body[loc[4]:loc[5]])
		rest := body[loc[1]:]

		inner, remainder, ok := splitBlock(rest, directive)
		if !ok {
			nodes = append(nodes, textNode(body[loc[0]:loc[1]]))
			body = rest
			continue
		}

		trueBody, falseBody := splitElse(inner)
		nodes = append(nodes, &blockNode{
			directive: directive,
			args:      args,
			trueBody:  parseNodes(trueBody),
			falseBody: parseNodes(falseBody),
		})
		body = remainder
	}

	return nodes
}

// splitBlock finds the close tag matching an already-consumed opening of the
// given type, skipping over nested same-type blocks.
func splitBlock(rest, directive string) (inner, remainder string, ok bool) {
	openPattern := regexp.MustCompile(`\{\{#` + directive + `\b`)
	closeTag := "{{/" + directive + "}}"

	depth := 1
	offset := 0
	for {
		closeIdx := strings.Index(rest[offset:], closeTag)
		if closeIdx < 0 {
			return "", "", false
		}
		closeIdx += offset

		depth += len(openPattern.FindAllStringIndex(rest[offset:closeIdx], -1))
		depth--
		if depth == 0 {
			return rest[:closeIdx], rest[closeIdx+len(closeTag):], true
		}
		offset = closeIdx + len(closeTag)
	}
}

// splitElse splits a block's inner text at the first {{else}} that is not
// inside a nested block.
func splitElse(inner string) (string, string) {
	const elseTag = "{{else}}"

	depth := 0
	for i := 0; i < len(inner); {
		switch {
		case strings.HasPrefix(inner[i:], "{{#"):
			depth++
			i += 3
		case strings.HasPrefix(inner[i:], "{{/"):
			if depth > 0 {
				depth--
			}
			i += 3
		case depth == 0 && strings.HasPrefix(inner[i:], elseTag):
			return inner[:i], inner[i+len(elseTag):]
		default:
			i++
		}
	}
	return inner, ""
}
