package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"landing-builder-backend/internal/content"
	"landing-builder-backend/internal/document"
	"landing-builder-backend/internal/landing"
	"landing-builder-backend/pkg/logger"
	"landing-builder-backend/pkg/validator"
)

// Global is shared by every subcommand.
type Global struct {
	Out io.Writer
}

type CLI struct {
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn"`

	Normalize NormalizeCmd `cmd:"" help:"Print the normalized form of a content file"`
	Render    RenderCmd    `cmd:"" help:"Render a content file to HTML"`
	Reorder   ReorderCmd   `cmd:"" help:"Move a template section and print the updated content"`
	Defaults  DefaultsCmd  `cmd:"" help:"Print the content of a new page"`
	Schema    SchemaCmd    `cmd:"" help:"Print the section metadata or document node specs"`
}

// NormalizeCmd implements the 'normalize' command.
type NormalizeCmd struct {
	File string `arg:"" type:"existingfile" help:"Content file (JSON or YAML)"`
}

func (n *NormalizeCmd) Run(g *Global) error {
	c, err := loadContent(n.File)
	if err != nil {
		return err
	}
	return writeContent(g.Out, c)
}

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File    string `arg:"" type:"existingfile" help:"Content file (JSON or YAML)"`
	Preview bool   `help:"Include builder data attributes"`
	Prefix  string `help:"Class name prefix for template sections"`
}

func (r *RenderCmd) Run(g *Global) error {
	c, err := loadContent(r.File)
	if err != nil {
		return err
	}
	html := content.Render(c, content.RenderOptions{
		Inline:   validator.InlineSanitizer(),
		RichText: validator.RichTextSanitizer(),
		Prefix:   r.Prefix,
		Preview:  r.Preview,
	})
	_, err = fmt.Fprintln(g.Out, html)
	return err
}

// ReorderCmd implements the 'reorder' command.
type ReorderCmd struct {
	File   string `arg:"" type:"existingfile" help:"Content file (JSON or YAML)"`
	Moved  string `required:"" help:"Section to move"`
	Target string `required:"" help:"Section whose position the moved section takes"`
}

func (r *ReorderCmd) Run(g *Global) error {
	c, err := loadContent(r.File)
	if err != nil {
		return err
	}
	tpl, err := content.AsTemplate(c)
	if err != nil {
		return err
	}
	tpl.Data = landing.ReorderSections(tpl.Data, landing.SectionKey(r.Moved), landing.SectionKey(r.Target))
	return writeContent(g.Out, tpl)
}

// DefaultsCmd implements the 'defaults' command.
type DefaultsCmd struct {
	Mode string `enum:"template,richText" default:"template" help:"Content mode (template, richText)"`
}

func (d *DefaultsCmd) Run(g *Global) error {
	mode, err := content.ParseMode(d.Mode)
	if err != nil {
		return err
	}
	return writeContent(g.Out, content.New(mode))
}

// SchemaCmd implements the 'schema' command.
type SchemaCmd struct {
	Kind string `arg:"" enum:"sections,nodes" default:"sections" help:"Schema to print (sections, nodes)"`
}

func (s *SchemaCmd) Run(g *Global) error {
	var (
		raw []byte
		err error
	)
	switch s.Kind {
	case "nodes":
		raw, err = document.MarshalSchemaJSON()
	default:
		raw, err = landing.DefaultRegistry().MarshalMetadataJSON()
	}
	if err != nil {
		return err
	}
	return writeIndented(g.Out, raw)
}

// loadContent reads a persisted content file. YAML files are converted to
// JSON before decoding.
func loadContent(path string) (content.Content, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c, err := content.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	logger.Debug("Content loaded", map[string]interface{}{"file": path, "mode": string(c.Mode())})
	return c, nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(doc)
}

func writeContent(w io.Writer, c content.Content) error {
	raw, err := content.Encode(c)
	if err != nil {
		return err
	}
	return writeIndented(w, raw)
}

func writeIndented(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
