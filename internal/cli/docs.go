package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/scruberr"
	"github.com/arthur-debert/scrub/pkg/style"
)

// newDocsCmd creates the docs command
func newDocsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "docs <name>",
		Short:   MsgDocsShort,
		Long:    MsgDocsLong,
		Example: MsgDocsExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, _, err := loadCollection(cmd.Context(), flags)
			if err != nil {
				return err
			}

			page, err := docsPage(coll, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderMarkdown(page))
			return nil
		},
	}
}

// docsPage builds a markdown documentation page for a script or category.
func docsPage(coll *collection.Collection, name string) (string, error) {
	if script, ok := coll.Script(name); ok {
		return scriptPage(script), nil
	}
	if category, ok := coll.Category(name); ok {
		return categoryPage(category), nil
	}
	return "", scruberr.Newf(scruberr.ErrScriptNotFound,
		"no script or category named %q in collection", name).
		WithDetail("script", name)
}

func scriptPage(script *collection.Script) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", script.Name)

	if tier := script.Recommend.String(); tier != "" {
		fmt.Fprintf(&b, "Recommended tier: **%s**\n\n", tier)
	}
	if script.IsInline() && script.RevertCode != "" {
		b.WriteString("This tweak can be reverted.\n\n")
	}
	if !script.IsInline() {
		b.WriteString("Calls:\n\n")
		for _, call := range script.Calls {
			fmt.Fprintf(&b, "- `%s`\n", call.Function)
		}
		b.WriteString("\n")
	}
	writeDocLinks(&b, script.Docs)
	return b.String()
}

func categoryPage(category *collection.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", category.Name)

	for _, child := range category.Children {
		switch n := child.(type) {
		case *collection.Category:
			fmt.Fprintf(&b, "- **%s/**\n", n.Name)
		case *collection.Script:
			fmt.Fprintf(&b, "- %s\n", n.Name)
		}
	}
	b.WriteString("\n")
	writeDocLinks(&b, category.Docs)
	return b.String()
}

func writeDocLinks(b *strings.Builder, docs []string) {
	if len(docs) == 0 {
		return
	}
	b.WriteString("## References\n\n")
	for _, url := range docs {
		fmt.Fprintf(b, "- <%s>\n", url)
	}
}

// renderMarkdown converts markdown to terminal output, falling back to the
// raw text when rich rendering is unavailable.
func renderMarkdown(content string) string {
	if !style.UseColor(os.Stdout) {
		return strings.TrimRight(content, "\n")
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return strings.TrimRight(content, "\n")
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return strings.TrimRight(content, "\n")
	}
	return strings.TrimRight(rendered, "\n")
}
