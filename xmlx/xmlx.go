// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package xmlx implements a minimal streaming XML writer.
//
// A [Document] emits markup incrementally as elements are opened and
// closed, so arbitrarily large documents never have to be held in
// memory as a node tree. Elements render in compact self-closing form
// when they close without content (see [Options.CompactEmpty]), and
// indentation can be suppressed per element subtree with
// [Element.Inline].
//
// Errors are sticky: the first write failure or API misuse is recorded
// on the document and reported by [Document.Close]; all later calls
// are no-ops. A document with a recorded error must be discarded.
package xmlx

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"cogentcore.org/core/base/indent"
)

// ErrClosed is recorded on the document when an element is written to
// after it was ended, or ended twice, or left open at [Document.Close].
// Any such document is corrupt and must not be used as output.
var ErrClosed = errors.New("xmlx: element closed")

// Attr is one name="value" attribute on an element start tag.
// The value is escaped on output; the name is written verbatim.
type Attr struct {
	Name  string
	Value string
}

// Options configures document output.
type Options struct {

	// Encoding is the label written in the document prolog. It does not
	// transcode anything; emitting text that honors it is the caller's
	// responsibility.
	Encoding string

	// Pretty inserts newlines and indentation around elements created
	// with [Element.Element].
	Pretty bool

	// CompactEmpty renders elements that close with no text and no
	// children in self-closing <name/> form.
	CompactEmpty bool

	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int
}

// DefaultOptions returns the standard output configuration:
// utf-8, pretty printed with 4-space indent, compact empty elements.
func DefaultOptions() *Options {
	return &Options{
		Encoding:     "utf-8",
		Pretty:       true,
		CompactEmpty: true,
		IndentWidth:  4,
	}
}

// rootElement embeds Element under a field name that does not shadow
// the promoted Element method.
type rootElement = Element

// Document is a streaming XML document writing to an [io.Writer].
// It behaves as an always-open root [Element]: top-level elements are
// created directly on it. Create with [NewDocument]; call [Document.Close]
// to flush and collect any recorded error.
type Document struct {
	rootElement

	w     *bufio.Writer
	opts  Options
	depth int
	err   error
}

// NewDocument returns a document writing to w, and writes the XML
// prolog immediately. A nil opts uses [DefaultOptions].
func NewDocument(w io.Writer, opts *Options) *Document {
	if opts == nil {
		opts = DefaultOptions()
	}
	d := &Document{w: bufio.NewWriter(w), opts: *opts}
	d.rootElement = Element{doc: d, indented: true, opened: true, hasContent: true}
	d.writeString(`<?xml version="1.0" encoding="` + d.opts.Encoding + `"?>`)
	return d
}

// Close flushes buffered output and returns the first error recorded
// on the document, if any. Elements still open at this point are a
// caller bug and are reported as [ErrClosed].
func (d *Document) Close() error {
	if d.depth > 0 {
		d.setErr(fmt.Errorf("%w: %d elements still open at document close", ErrClosed, d.depth))
	}
	if d.opts.Pretty {
		d.writeString("\n")
	}
	ferr := d.w.Flush()
	if d.err != nil {
		return d.err
	}
	return ferr
}

// Err returns the first error recorded on the document, if any.
func (d *Document) Err() error { return d.err }

func (d *Document) setErr(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Document) writeString(s string) {
	if d.err != nil {
		return
	}
	if _, err := d.w.WriteString(s); err != nil {
		d.err = err
	}
}

// escapeString writes s with XML character escaping applied.
func (d *Document) escapeString(s string) {
	if d.err != nil {
		return
	}
	if err := xml.EscapeText(d.w, []byte(s)); err != nil {
		d.err = err
	}
}

// Element is one node of the document, usable between the time it is
// opened by [Element.Element] or [Element.Inline] and the time it is
// ended by [Element.End]. Attributes are fixed at open time; text and
// child elements can be added while it is open.
type Element struct {
	doc  *Document
	name string

	// level is the nesting depth of this element's children.
	level int

	// indented elements place their children on indented lines when
	// the document is pretty printed. Inline elements are not indented
	// and neither are any of their descendants.
	indented bool

	opened     bool
	hasContent bool
}

// Element opens a child element with the given attributes, placed on
// its own indented line when the document is pretty printed.
// The returned element must be ended with [Element.End].
func (e *Element) Element(name string, attrs ...Attr) *Element {
	return e.child(name, attrs, true)
}

// Inline opens a child element rendered with no inserted whitespace,
// regardless of the document pretty-print setting. Descendants of an
// inline element render inline as well.
// The returned element must be ended with [Element.End].
func (e *Element) Inline(name string, attrs ...Attr) *Element {
	return e.child(name, attrs, false)
}

func (e *Element) child(name string, attrs []Attr, indented bool) *Element {
	d := e.doc
	if !e.opened {
		d.setErr(fmt.Errorf("%w: cannot open <%s> under ended <%s>", ErrClosed, name, e.name))
		return &Element{doc: d, name: name}
	}
	e.completeStartTag()
	level := e.level
	if d.opts.Pretty && e.indented {
		d.writeString("\n" + indent.Spaces(e.level, d.opts.IndentWidth))
		level++
	}
	d.writeString("<" + name)
	for _, at := range attrs {
		d.writeString(" " + at.Name + `="`)
		d.escapeString(at.Value)
		d.writeString(`"`)
	}
	d.depth++
	return &Element{doc: d, name: name, level: level, indented: indented && e.indented, opened: true}
}

// Text appends character data to the element, escaped as needed.
func (e *Element) Text(s string) {
	d := e.doc
	if !e.opened {
		d.setErr(fmt.Errorf("%w: cannot write text in ended <%s>", ErrClosed, e.name))
		return
	}
	e.completeStartTag()
	d.escapeString(s)
}

// End writes the element's closing tag, in compact form when the
// element is still empty and [Options.CompactEmpty] is set. Every
// opened element must be ended exactly once, on every exit path;
// ending twice is recorded as a document error.
func (e *Element) End() {
	d := e.doc
	if !e.opened {
		d.setErr(fmt.Errorf("%w: <%s> ended twice", ErrClosed, e.name))
		return
	}
	e.opened = false
	d.depth--
	if d.opts.CompactEmpty && !e.hasContent {
		d.writeString("/>")
		return
	}
	if !e.hasContent {
		d.writeString(">")
	}
	if d.opts.Pretty && e.indented {
		d.writeString("\n" + indent.Spaces(e.level-1, d.opts.IndentWidth))
	}
	d.writeString("</" + e.name + ">")
}

// completeStartTag terminates a pending start tag with ">" before any
// content is written.
func (e *Element) completeStartTag() {
	if !e.hasContent {
		e.doc.writeString(">")
		e.hasContent = true
	}
}
