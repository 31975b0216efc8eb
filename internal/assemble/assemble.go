// Package assemble implements the Assembler: builds the final Document
// from the ordered, admitted, non-empty FileRecords the rest of the
// pipeline produced.
package assemble

import (
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/toak-dev/toak/internal/pipeline"
)

const fence = "~~~"

// Build renders records (already in Enumerator order) into a Document. A
// record whose redacted body is empty or whitespace-only is omitted
// entirely, per spec. appendix, if non-empty, is separated by a horizontal
// rule after the last section.
func Build(records []*pipeline.FileRecord, appendix string) *pipeline.Document {
	doc := &pipeline.Document{Appendix: appendix}

	for _, r := range records {
		if r.Error != nil || r.IsEmpty() {
			continue
		}
		doc.Sections = append(doc.Sections, pipeline.Section{
			Heading: r.Path,
			Body:    r.Redacted,
		})
	}

	doc.Markdown = render(doc)
	doc.Fingerprint = xxh3.HashString(doc.Markdown)
	return doc
}

func render(doc *pipeline.Document) string {
	var sb strings.Builder
	sb.WriteString("# Project Files\n")

	for _, s := range doc.Sections {
		sb.WriteString("\n## ")
		sb.WriteString(s.Heading)
		sb.WriteString("\n")
		sb.WriteString(fence)
		sb.WriteString("\n")
		sb.WriteString(s.Body)
		if !strings.HasSuffix(s.Body, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(fence)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(doc.Appendix) != "" {
		sb.WriteString("\n---\n\n")
		sb.WriteString(doc.Appendix)
		if !strings.HasSuffix(doc.Appendix, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// SectionFraming returns the constant header/footer text the Chunker wraps
// around a section's body, matching the layout render produces exactly so
// chunk.Tokens(header)+chunk.Tokens(footer) reflects real framing cost.
func SectionFraming(heading string) (header, footer string) {
	return "\n## " + heading + "\n" + fence + "\n", "\n" + fence + "\n"
}
