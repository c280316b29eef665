package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser/nodes"
)

func validateOutput(format string) error {
	switch format {
	case "text", "yaml", "json":
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, format)
	}
}

// render prints v as yaml or json, or calls text for the text format.
func render(cmd *cobra.Command, v any, text func()) error {
	switch outputFormat {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Print(string(data))
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Println(string(data))
	default:
		text()
	}
	return nil
}

// printOutline prints an outline as an indented tree.
func printOutline(cmd *cobra.Command, o nodes.Outline, indent int) {
	line := strings.Repeat("  ", indent) + o.Type
	if o.Label != "" {
		line += "  " + o.Label
	}
	if o.ID != "" {
		line += "  [" + o.ID + "]"
	}
	cmd.Println(line)
	for _, c := range o.Children {
		printOutline(cmd, c, indent+1)
	}
}

// formatRow is the printable form of a format.
type formatRow struct {
	Itag      int    `json:"itag" yaml:"itag"`
	Kind      string `json:"kind" yaml:"kind"`
	Container string `json:"container" yaml:"container"`
	Codec     string `json:"codec" yaml:"codec"`
	Quality   string `json:"quality" yaml:"quality"`
	Bitrate   int64  `json:"bitrate" yaml:"bitrate"`
	Size      int64  `json:"size,omitempty" yaml:"size,omitempty"`
	Language  string `json:"language,omitempty" yaml:"language,omitempty"`
	Ciphered  bool   `json:"ciphered,omitempty" yaml:"ciphered,omitempty"`
}

func toRow(f domain.Format) formatRow {
	quality := f.QualityLabel
	if quality == "" {
		quality = f.AudioQuality
	}
	return formatRow{
		Itag:      f.Itag,
		Kind:      string(f.Kind()),
		Container: f.Container,
		Codec:     f.Codec(),
		Quality:   quality,
		Bitrate:   f.Bitrate,
		Size:      f.ContentLength,
		Language:  f.Language(),
		Ciphered:  f.URL == "" && f.SignatureCipher != "",
	}
}

func printRow(cmd *cobra.Command, r formatRow) {
	cmd.Printf("  %4d  %-8s  %-5s  %-12s  %-14s  %9d", r.Itag, r.Kind, r.Container, r.Codec, r.Quality, r.Bitrate)
	if r.Language != "" {
		cmd.Printf("  %s", r.Language)
	}
	if r.Ciphered {
		cmd.Print("  (ciphered)")
	}
	cmd.Println()
}
