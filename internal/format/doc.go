// Package format turns raw help-dump values and descriptions into text that is
// safe to embed in MDX reference pages.
//
// Three concerns live here:
//   - Value renders an option default on a single display line, redacting
//     environment-specific paths on the scalar path.
//   - Escape and Unescape neutralise HTML-significant characters and the curly
//     braces MDX would otherwise evaluate as expressions.
//   - Description rewrites the source markup (indented and fenced code blocks,
//     inline code spans) into fenced code blocks and escaped prose.
package format
