// Package xmldiff compares two documents line by line over a canonical
// serialization: no declaration, two-space indent, attributes sorted by name.
package xmldiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/chrisuehlinger/xmlnode/xmlnode"
)

// Op classifies a diff line.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (op Op) prefix() string {
	switch op {
	case Delete:
		return "-"
	case Insert:
		return "+"
	}
	return " "
}

// Line is one line of canonical output and what happened to it.
type Line struct {
	Op   Op
	Text string
}

// Canonical serializes doc in the form the diff is computed over.
func Canonical(doc *xmlnode.Document) (string, error) {
	out, err := xmlnode.Marshal(doc,
		xmlnode.WithDeclaration(false),
		xmlnode.WithIndent("  "),
		xmlnode.WithSortedAttributes(true),
	)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Diff returns the line diff from a to b.
func Diff(a, b *xmlnode.Document) ([]Line, error) {
	from, err := Canonical(a)
	if err != nil {
		return nil, fmt.Errorf("xmldiff: left: %w", err)
	}
	to, err := Canonical(b)
	if err != nil {
		return nil, fmt.Errorf("xmldiff: right: %w", err)
	}
	return DiffText(from, to), nil
}

// DiffText returns the line diff between two texts.
func DiffText(from, to string) []Line {
	dmp := diffpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	var lines []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			lines = append(lines, Line{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}
	return lines
}

// Changed reports whether any line was inserted or deleted.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// Options control Write.
type Options struct {
	// Color wraps deleted lines in red and inserted lines in green.
	Color bool
	// Context is the number of unchanged lines kept around each change.
	// A negative value keeps every line.
	Context int
}

// Write prints lines with a one-character op prefix. Runs of unchanged lines
// longer than the context allows are folded into a single "@@" marker.
func Write(w io.Writer, lines []Line, opts Options) error {
	deleted := color.New(color.FgRed)
	inserted := color.New(color.FgGreen)
	folded := color.New(color.FgCyan)
	for _, c := range []*color.Color{deleted, inserted, folded} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	keep := visible(lines, opts.Context)
	for i := 0; i < len(lines); i++ {
		if !keep[i] {
			j := i
			for j < len(lines) && !keep[j] {
				j++
			}
			if _, err := folded.Fprintln(w, fmt.Sprintf("@@ %d unchanged lines @@", j-i)); err != nil {
				return err
			}
			i = j - 1
			continue
		}

		l := lines[i]
		text := l.Op.prefix() + " " + l.Text
		var err error
		switch l.Op {
		case Delete:
			_, err = deleted.Fprintln(w, text)
		case Insert:
			_, err = inserted.Fprintln(w, text)
		default:
			_, err = fmt.Fprintln(w, text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// visible marks the lines Write prints.
func visible(lines []Line, context int) []bool {
	keep := make([]bool, len(lines))
	if context < 0 {
		for i := range keep {
			keep[i] = true
		}
		return keep
	}
	for i, l := range lines {
		if l.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	return keep
}
