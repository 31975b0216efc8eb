// Package chunk implements the Chunker: it splits an assembled Document's
// Sections into token-budget-sized FileChunks, reusing the Assembler's exact
// header/footer framing so the token count attributed to each chunk matches
// what downstream consumers actually see.
//
// The line-accumulation strategy here is a direct generalization of the
// teacher's truncateToFit binary search: instead of finding the single
// longest prefix of lines that fits one budget and discarding the rest, the
// Chunker repeats that same fit-check per line in a single linear pass and
// starts a new chunk whenever the next line would overflow the current one.
package chunk

import (
	"strings"

	"github.com/toak-dev/toak/internal/assemble"
	"github.com/toak-dev/toak/internal/pipeline"
)

// Tokenizer counts the tokens a piece of text would consume. Implementations
// must be safe for concurrent use; the Chunker calls Count on the hot path
// twice per line (the line alone, then the candidate chunk body).
type Tokenizer interface {
	Count(text string) int
}

// Split partitions every admitted Section of doc into one or more FileChunks
// of at most maxTokens tokens each, per section, in Enumerator order. Chunks
// belonging to the same file are contiguous and increase in ChunkIndex.
//
// maxTokens must be positive; a Section whose constant framing alone already
// meets or exceeds maxTokens is emitted as a single overflow chunk carrying
// no body content, since no content budget remains to hold anything else.
func Split(doc *pipeline.Document, tok Tokenizer, maxTokens int) []pipeline.FileChunk {
	var chunks []pipeline.FileChunk

	for _, section := range doc.Sections {
		fileChunks := splitSection(section, tok, maxTokens)
		chunks = append(chunks, fileChunks...)
	}

	return chunks
}

func splitSection(section pipeline.Section, tok Tokenizer, maxTokens int) []pipeline.FileChunk {
	header, footer := assemble.SectionFraming(section.Heading)
	framingTokens := tok.Count(header) + tok.Count(footer)

	if framingTokens >= maxTokens {
		chunk := pipeline.FileChunk{
			FileName:   section.Heading,
			Content:    header + footer,
			Tokens:     framingTokens,
			ChunkIndex: 0,
			ChunkCount: 1,
			Overflow:   true,
		}
		return []pipeline.FileChunk{chunk}
	}

	contentBudget := maxTokens - framingTokens
	bodies := accumulateLines(section.Body, tok, contentBudget)

	chunks := make([]pipeline.FileChunk, 0, len(bodies))
	for i, b := range bodies {
		content := header + b.text + footer
		chunks = append(chunks, pipeline.FileChunk{
			FileName:   section.Heading,
			Content:    content,
			Tokens:     framingTokens + b.tokens,
			ChunkIndex: i,
			Overflow:   b.overflow,
		})
	}

	for i := range chunks {
		chunks[i].ChunkCount = len(chunks)
	}

	return chunks
}

type body struct {
	text     string
	tokens   int
	overflow bool
}

// accumulateLines splits text into lines and greedily packs them into chunks
// of at most contentBudget tokens. A line whose own token count exceeds
// contentBudget becomes its own overflow chunk rather than being dropped or
// splitting mid-line.
func accumulateLines(text string, tok Tokenizer, contentBudget int) []body {
	lines := strings.Split(text, "\n")

	var result []body
	var buf []string

	flush := func() {
		if len(buf) == 0 {
			return
		}
		joined := strings.Join(buf, "\n")
		result = append(result, body{text: joined, tokens: tok.Count(joined)})
		buf = buf[:0]
	}

	for _, line := range lines {
		lineTokens := tok.Count(line)

		if lineTokens > contentBudget {
			flush()
			result = append(result, body{text: line, tokens: lineTokens, overflow: true})
			continue
		}

		candidate := appendLine(buf, line)
		candidateTokens := tok.Count(strings.Join(candidate, "\n"))
		if len(buf) > 0 && candidateTokens > contentBudget {
			flush()
			buf = append(buf, line)
			continue
		}

		buf = candidate
	}
	flush()

	if len(result) == 0 {
		result = append(result, body{text: "", tokens: tok.Count("")})
	}

	return result
}

func appendLine(buf []string, line string) []string {
	out := make([]string, len(buf), len(buf)+1)
	copy(out, buf)
	return append(out, line)
}
