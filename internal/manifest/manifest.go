package manifest

import (
	"fmt"
	"os"
	"strings"

	"thememgr/internal/models"
)

// Header is the literal string every valid animation manifest must contain.
const Header = "Filetype: Flipper Animation Manifest"

// namePrefix starts each animation block in a manifest
const namePrefix = "Name:"

// Document is the parsed view of one manifest file. Documents are built
// fresh on every parse and never cached.
type Document struct {
	Valid   bool // header literal present somewhere in the file
	Entries int  // number of line-initial "Name:" occurrences
}

// Parse reads and parses the manifest at path. The returned error reports
// I/O problems only; a readable file that lacks the header yields
// Valid=false, Entries=0 with a nil error.
func Parse(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read manifest: %w", err)
	}
	return ParseBytes(data), nil
}

// ParseBytes parses manifest content already in memory.
//
// An entry counts only when "Name:" starts a line, i.e. sits at the very
// beginning of the content or immediately after a newline. Substring
// matches elsewhere in a line do not count.
func ParseBytes(data []byte) Document {
	content := string(data)
	if !strings.Contains(content, Header) {
		return Document{}
	}

	doc := Document{Valid: true}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, namePrefix) {
			doc.Entries++
		}
	}
	return doc
}

// FirstName returns the first animation name listed in the manifest at
// path: the text after the first line-initial "Name:", leading spaces
// skipped, cut at the name length cap and trimmed of trailing whitespace.
// The second return is false when the file is unreadable or no usable
// name exists.
func FirstName(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return firstName(string(data))
}

func firstName(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, namePrefix) {
			continue
		}

		// Only the first Name: line is consulted, even when empty.
		value := nameValue(line)
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

// Names returns every animation name listed in the manifest at path, in
// file order, each processed the way FirstName processes its value.
// Empty Name: lines are skipped; an unreadable file yields nil.
func Names(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, namePrefix) {
			continue
		}
		if value := nameValue(line); value != "" {
			names = append(names, value)
		}
	}
	return names
}

// nameValue extracts the name from one line-initial "Name:" line: leading
// spaces skipped, cut at any carriage return, capped at the name length
// limit and trimmed of trailing whitespace.
func nameValue(line string) string {
	value := strings.TrimLeft(line[len(namePrefix):], " ")
	if i := strings.IndexByte(value, '\r'); i >= 0 {
		value = value[:i]
	}
	if runes := []rune(value); len(runes) > models.MaxNameRunes {
		value = string(runes[:models.MaxNameRunes])
	}
	return strings.TrimRight(value, " \t")
}

// Synthesize returns the manifest content written when a Single theme is
// applied: the fixed stat block with exactly one Name entry.
func Synthesize(name string) string {
	return Header + "\n" +
		"Version: 1\n" +
		"\n" +
		"Name: " + name + "\n" +
		"Min butthurt: 0\n" +
		"Max butthurt: 14\n" +
		"Min level: 1\n" +
		"Max level: 30\n" +
		"Weight: 5\n"
}
