package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/modfetch/internal/model"
)

// Format represents supported report formats.
type Format int

const (
	// FormatText creates a plain list of URLs to open, one per line,
	// followed by a short summary.
	FormatText Format = iota

	// FormatMarkdown creates a checklist suitable for a README or issue.
	FormatMarkdown

	// FormatJSON serializes the whole result.
	FormatJSON
)

// ParseFormat maps "text", "md"/"markdown" and "json" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown report format %q", s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Creator renders a download result for the operator.
//
// The manual-download list comes first in every format: it is the only
// part that needs action.
//
// Example:
//
//	creator := NewCreator(FormatText)
//	content, err := creator.CreateReport(result)
//	os.WriteFile("manual-downloads.txt", []byte(content), 0644)
type Creator struct {
	format Format
}

// NewCreator creates a new Creator.
func NewCreator(format Format) *Creator {
	return &Creator{format: format}
}

// CreateReport generates report content for a result.
func (c *Creator) CreateReport(result *model.Result) (string, error) {
	switch c.format {
	case FormatMarkdown:
		return c.createMarkdown(result), nil
	case FormatJSON:
		return c.createJSON(result)
	default:
		return c.createText(result), nil
	}
}

// createText generates a plain text report:
//
//	https://legacy.curseforge.com/minecraft/mc-mods/foo/download/42 -> foo.jar
//
//	12 fetched, 1 manual, 0 failed, 2 rounds
func (c *Creator) createText(result *model.Result) string {
	var sb strings.Builder

	for _, md := range result.ManualDownloads {
		sb.WriteString(fmt.Sprintf("%s -> %s\n", md.URL, filepath.Base(md.Outcome.Path)))
	}
	for _, e := range result.Failed {
		sb.WriteString(fmt.Sprintf("failed: %s\n", e))
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(summary(result))
	sb.WriteString("\n")
	return sb.String()
}

// createMarkdown generates a Markdown checklist.
func (c *Creator) createMarkdown(result *model.Result) string {
	var sb strings.Builder

	sb.WriteString("# Mod download report\n\n")
	sb.WriteString(summary(result))
	sb.WriteString("\n")

	if len(result.ManualDownloads) > 0 {
		sb.WriteString("\n## Manual downloads\n\n")
		for _, md := range result.ManualDownloads {
			sb.WriteString(fmt.Sprintf("- [ ] [%s](%s) → `%s`\n", filepath.Base(md.Outcome.Path), md.URL, md.Outcome.Path))
		}
	}

	if len(result.Failed) > 0 {
		sb.WriteString("\n## Failed\n\n")
		for _, e := range result.Failed {
			sb.WriteString(fmt.Sprintf("- project %d, file %d\n", e.ProjectID, e.FileID))
		}
	}

	if len(result.Jars) > 0 {
		sb.WriteString("\n## Files\n\n")
		sb.WriteString("| File | Category |\n|---|---|\n")
		for _, jar := range result.Jars {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", filepath.Base(jar.Path), jar.Category))
		}
	}

	return sb.String()
}

type jsonManualDownload struct {
	URL       string `json:"url"`
	Path      string `json:"path"`
	Category  string `json:"category"`
	ProjectID int    `json:"project_id"`
	FileID    int    `json:"file_id"`
}

type jsonFailed struct {
	ProjectID int `json:"project_id"`
	FileID    int `json:"file_id"`
}

type jsonReport struct {
	Jars            []model.Jar          `json:"jars"`
	ManualDownloads []jsonManualDownload `json:"manual_downloads"`
	Failed          []jsonFailed         `json:"failed"`
	Rounds          int                  `json:"rounds"`
}

// createJSON generates an indented JSON document.
func (c *Creator) createJSON(result *model.Result) (string, error) {
	r := jsonReport{
		Jars:            result.Jars,
		ManualDownloads: make([]jsonManualDownload, 0, len(result.ManualDownloads)),
		Failed:          make([]jsonFailed, 0, len(result.Failed)),
		Rounds:          result.Rounds,
	}
	if r.Jars == nil {
		r.Jars = []model.Jar{}
	}
	for _, md := range result.ManualDownloads {
		r.ManualDownloads = append(r.ManualDownloads, jsonManualDownload{
			URL:       md.URL,
			Path:      md.Outcome.Path,
			Category:  md.Outcome.Category,
			ProjectID: md.Outcome.Entry.ProjectID,
			FileID:    md.Outcome.Entry.FileID,
		})
	}
	for _, e := range result.Failed {
		r.Failed = append(r.Failed, jsonFailed{ProjectID: e.ProjectID, FileID: e.FileID})
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func summary(result *model.Result) string {
	fetched := len(result.Jars) - len(result.ManualDownloads)
	return fmt.Sprintf("%d fetched, %d manual, %d failed, %d rounds",
		fetched, len(result.ManualDownloads), len(result.Failed), result.Rounds)
}
