// Package frontmatter reads and writes the flat "key: value" header that
// prefixes every SKILL.md file.
//
// A header is delimited by lines containing only "---". Each line inside is
// split on its first colon into a key and a value; both are trimmed. A value
// wrapped in square brackets is a list whose items are separated by commas:
//
//	---
//	name: deploy-helper
//	description: Ships a release. Use when: cutting a tag
//	version: 1.0.3
//	tags: [release, ci]
//	---
//
// The grammar is deliberately narrower than YAML. Descriptions routinely
// contain ": " (as in the "Use when:" suffix above), which a YAML parser
// rejects as a nested mapping.
//
// # Basic Usage
//
//	meta, body := frontmatter.Parse(content)
//	name := meta.String("name")
//	tags := meta.Strings("tags")
//
//	meta.Set("version", frontmatter.Text("1.0.4"))
//	out := frontmatter.Format(meta, body)
//
// Both Unix (LF) and Windows (CRLF) line endings are accepted on input.
// Output always uses LF.
package frontmatter
