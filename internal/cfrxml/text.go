package cfrxml

import "strings"

// ParagraphTexts returns the trimmed text of every P element under n, in
// document order. Structure headings (HEAD, chapter and part labels) are not
// paragraphs and are excluded.
func ParagraphTexts(n *Node) []string {
	var texts []string
	collectParagraphs(n, &texts)
	return texts
}

func collectParagraphs(n *Node, texts *[]string) {
	for _, s := range n.content {
		if s.child == nil {
			continue
		}
		if s.child.Name == "P" {
			*texts = append(*texts, strings.TrimSpace(s.child.Text()))
			continue
		}
		collectParagraphs(s.child, texts)
	}
}

// WordCount sums whitespace-delimited tokens across all paragraph texts
// under n. It is zero for a node with no paragraphs.
func WordCount(n *Node) int {
	count := 0
	for _, text := range ParagraphTexts(n) {
		count += len(strings.Fields(text))
	}
	return count
}
