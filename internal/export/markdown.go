package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/code"
	"github.com/gorewood/ismism/internal/output"
)

// MarkdownSchema identifies markdown documents written by FormatMarkdown.
const MarkdownSchema = "ismism.export/v1"

// frontmatter is the YAML header of an exported markdown document.
type frontmatter struct {
	Schema   string   `yaml:"schema"`
	Code     string   `yaml:"code"`
	Name     string   `yaml:"name"`
	Aliases  []string `yaml:"aliases,omitempty"`
	Segments []string `yaml:"segments,omitempty,flow"`
}

// FormatMarkdown formats a single record as a markdown document.
// Returns the formatted markdown string.
func FormatMarkdown(ism *catalog.Ism) string {
	var builder strings.Builder
	writeFrontmatter(&builder, ism)
	builder.WriteString(FormatMarkdownBody(ism))
	return builder.String()
}

// FormatMarkdownBody formats the record without frontmatter, for rendering
// in a terminal.
func FormatMarkdownBody(ism *catalog.Ism) string {
	var builder strings.Builder

	writeDescription(&builder, ism)
	writeFourGrid(&builder, ism)
	writeKeyPoints(&builder, ism)
	writeQA(&builder, ism)
	writeExtensions(&builder, ism)

	return builder.String()
}

// writeFrontmatter writes the YAML frontmatter section.
// Segments are listed only for a well-formed code.
func writeFrontmatter(builder *strings.Builder, ism *catalog.Ism) {
	fm := frontmatter{
		Schema:  MarkdownSchema,
		Code:    ism.Code,
		Name:    ism.Name,
		Aliases: ism.Aliases,
	}
	if c, err := code.Parse(ism.Code); err == nil {
		for _, seg := range c {
			fm.Segments = append(fm.Segments, seg.String())
		}
	}

	data, err := yaml.Marshal(fm)
	if err != nil {
		// Plain strings always marshal; keep the header well-formed regardless.
		data = fmt.Appendf(nil, "schema: %s\n", MarkdownSchema)
	}

	builder.WriteString("---\n")
	builder.Write(data)
	builder.WriteString("---\n\n")
}

func writeDescription(builder *strings.Builder, ism *catalog.Ism) {
	fmt.Fprintf(builder, "# %s %s\n\n", ism.Code, ism.Name)
	if desc := strings.TrimSpace(ism.Description); desc != "" {
		builder.WriteString(desc)
		builder.WriteString("\n\n")
	}
}

// writeFourGrid writes one bullet per filled grid position.
func writeFourGrid(builder *strings.Builder, ism *catalog.Ism) {
	if ism.FourGrid.IsEmpty() {
		return
	}
	builder.WriteString("## 四格\n\n")
	for _, pos := range ism.FourGrid.Positions() {
		if pos.Item == nil {
			continue
		}
		fmt.Fprintf(builder, "- **%s** (%s): %s\n", pos.Label, pos.Item.Value, pos.Item.Text)
	}
	builder.WriteString("\n")
}

func writeKeyPoints(builder *strings.Builder, ism *catalog.Ism) {
	if len(ism.KeyPoints) == 0 {
		return
	}
	builder.WriteString("## 要点\n\n")
	for _, point := range ism.KeyPoints {
		fmt.Fprintf(builder, "- %s\n", point)
	}
	builder.WriteString("\n")
}

func writeQA(builder *strings.Builder, ism *catalog.Ism) {
	if len(ism.QA) == 0 {
		return
	}
	builder.WriteString("## 问答\n\n")
	for _, qa := range ism.QA {
		fmt.Fprintf(builder, "**Q:** %s\n\n**A:** %s\n\n", qa.Question, qa.Answer)
	}
}

func writeExtensions(builder *strings.Builder, ism *catalog.Ism) {
	if len(ism.Extensions) == 0 {
		return
	}
	builder.WriteString("## 延伸\n\n")
	for _, ext := range ism.Extensions {
		if ext.Description == "" {
			fmt.Fprintf(builder, "- %s\n", ext.Title)
			continue
		}
		fmt.Fprintf(builder, "- %s: %s\n", ext.Title, ext.Description)
	}
	builder.WriteString("\n")
}

// WriteMarkdownFiles writes each record as a separate markdown file to the output directory.
// Files are named <code>.md and written atomically. Two codes that map to the
// same file name are a data error, reported before anything is written.
func WriteMarkdownFiles(isms []*catalog.Ism, dir string) error {
	names := make(map[string]string, len(isms))
	for _, ism := range isms {
		name := markdownFileName(ism.Code)
		if prev, ok := names[name]; ok {
			return output.NewDataError(fmt.Sprintf("codes %q and %q both export to %s", prev, ism.Code, name))
		}
		names[name] = ism.Code
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return output.NewSystemErrorWithCause("failed to create directory "+dir, err)
	}

	for _, ism := range isms {
		filename := filepath.Join(dir, markdownFileName(ism.Code))
		if err := atomicWrite(filename, []byte(FormatMarkdown(ism))); err != nil {
			return output.NewSystemErrorWithCause("failed to write "+filename, err)
		}
	}

	return nil
}

// markdownFileName keeps a malformed code from escaping the output directory.
func markdownFileName(c string) string {
	c = strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(c))
	if c == "" || c == "." || c == ".." {
		c = "_"
	}
	return c + ".md"
}
