// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext produces the HTML stored in article bodies. Editors drive
// a Surface with a small command set; stores only ever see the resulting
// HTML string.
package richtext

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Command is an editing action understood by a Surface.
type Command string

// Supported commands.
const (
	Paragraph   Command = "paragraph"
	Heading2    Command = "h2"
	Heading3    Command = "h3"
	Bold        Command = "bold"
	Italic      Command = "italic"
	Underline   Command = "underline"
	BulletList  Command = "bulletList"
	OrderedList Command = "orderedList"
	Link        Command = "link"
	Image       Command = "image"
)

// ErrUnknownCommand is returned for commands a surface does not implement.
var ErrUnknownCommand = errors.New("unknown editing command")

// Surface is an editing surface that accumulates HTML.
type Surface interface {
	Exec(cmd Command, args ...string) error
	HTML() string
}

// Builder is a Surface that appends one block or inline element per command.
// Text arguments are escaped.
type Builder struct {
	buf strings.Builder
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Exec applies cmd.
//
//	Paragraph, Heading2, Heading3, Bold, Italic, Underline: text
//	BulletList, OrderedList: one argument per item
//	Link: href, text
//	Image: src, alt
func (b *Builder) Exec(cmd Command, args ...string) error {
	need := 1
	switch cmd {
	case Link, Image:
		need = 2
	}
	if len(args) < need {
		return fmt.Errorf("%s needs %d argument(s), got %d", cmd, need, len(args))
	}

	switch cmd {
	case Paragraph:
		b.wrap("p", args[0])
	case Heading2:
		b.wrap("h2", args[0])
	case Heading3:
		b.wrap("h3", args[0])
	case Bold:
		b.wrap("strong", args[0])
	case Italic:
		b.wrap("em", args[0])
	case Underline:
		b.wrap("u", args[0])
	case BulletList:
		b.list("ul", args)
	case OrderedList:
		b.list("ol", args)
	case Link:
		fmt.Fprintf(&b.buf, `<a href="%s">%s</a>`, html.EscapeString(args[0]), html.EscapeString(args[1]))
	case Image:
		fmt.Fprintf(&b.buf, `<img src="%s" alt="%s">`, html.EscapeString(args[0]), html.EscapeString(args[1]))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return nil
}

func (b *Builder) wrap(tag, text string) {
	fmt.Fprintf(&b.buf, "<%s>%s</%s>", tag, html.EscapeString(text), tag)
}

func (b *Builder) list(tag string, items []string) {
	b.buf.WriteString("<" + tag + ">")
	for _, it := range items {
		b.wrap("li", it)
	}
	b.buf.WriteString("</" + tag + ">")
}

// HTML returns the accumulated markup.
func (b *Builder) HTML() string {
	return b.buf.String()
}

// policy strips scripts, event handlers and unsafe URLs while keeping the
// formatting tags editors produce. bluemonday policies are safe for
// concurrent use once built.
var policy = bluemonday.UGCPolicy()

// Sanitize returns content safe to render inside a page.
func Sanitize(content string) string {
	return policy.Sanitize(content)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// FromMarkdown converts Markdown to sanitized HTML.
func FromMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return Sanitize(buf.String()), nil
}

var _ Surface = (*Builder)(nil)
