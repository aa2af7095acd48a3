// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata manages the .xmpdata file the pdfx package reads to
// embed XMP metadata in the compiled PDF. Metadata can come from a YAML
// document supplied by the user; without one, an embedded template is
// written for the user to fill in.
// Implements: prd006-metadata (R1-R4);
//
//	docs/ARCHITECTURE § Metadata.
package metadata

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/latex2pdfa/pkg/types"
)

//go:embed sample.xmpdata
var sampleXmpdata []byte

// Document is the archival metadata for the generated PDF.
type Document struct {
	// Title is the document title.
	Title string `yaml:"title"`

	// Authors lists the document authors in order.
	Authors []string `yaml:"authors,omitempty"`

	// Subject is the abstract or a short description.
	Subject string `yaml:"subject,omitempty"`

	// Keywords are the archival keywords.
	Keywords []string `yaml:"keywords,omitempty"`

	// Language is the RFC 3066 language tag, e.g. "en-US".
	Language string `yaml:"language,omitempty"`

	// Publisher is the publishing institution.
	Publisher string `yaml:"publisher,omitempty"`
}

// Load reads a metadata document from a YAML file.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading metadata file: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing metadata file %s: %w", path, err)
	}
	if doc.Title == "" {
		return Document{}, fmt.Errorf("metadata file %s has no title", path)
	}
	return doc, nil
}

// Render produces the .xmpdata content for the document. Multi-valued
// fields use the \sep separator the pdfx package expects; empty fields
// are omitted.
func (d Document) Render() string {
	var b strings.Builder
	b.WriteString("% Generated by latex2pdfa. Edit the source metadata file instead.\n")
	writeField(&b, "Title", d.Title)
	writeField(&b, "Author", strings.Join(d.Authors, `\sep `))
	writeField(&b, "Language", d.Language)
	writeField(&b, "Subject", d.Subject)
	writeField(&b, "Keywords", strings.Join(d.Keywords, `\sep `))
	writeField(&b, "Publisher", d.Publisher)
	return b.String()
}

func writeField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "\\%s{%s}\n", name, value)
}

// XmpdataPath returns the .xmpdata path the pdfx package will look for
// next to the main tex file.
func XmpdataPath(texPath string) string {
	base := filepath.Base(texPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(texPath), stem+".xmpdata")
}

// Ensure makes sure an .xmpdata file exists for the project. A supplied
// YAML metadata file always regenerates it; otherwise an existing file is
// left untouched and a missing one is seeded from the embedded template.
// Progress is reported to w.
func Ensure(texPath string, cfg types.MetadataConfig, w io.Writer) error {
	if cfg.Ignore {
		fmt.Fprintln(w, "metadata: skipped")
		return nil
	}

	target := XmpdataPath(texPath)

	if cfg.File != "" {
		doc, err := Load(cfg.File)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(doc.Render()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		fmt.Fprintf(w, "metadata: wrote %s from %s\n", filepath.Base(target), cfg.File)
		return nil
	}

	if _, err := os.Stat(target); err == nil {
		fmt.Fprintf(w, "metadata: using existing %s\n", filepath.Base(target))
		return nil
	}

	if err := os.WriteFile(target, sampleXmpdata, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	fmt.Fprintf(w, "metadata: wrote template %s; review its placeholders before archiving\n", filepath.Base(target))
	return nil
}
