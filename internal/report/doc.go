// Package report renders the outcome of a download run for the operator.
//
// Files whose distribution is restricted cannot be fetched by modfetch;
// the report lists the pages where they can be downloaded by hand and the
// path each one has to be saved as.
//
//	creator := report.NewCreator(report.FormatMarkdown)
//	content, err := creator.CreateReport(result)
//
// Supported formats:
//   - Text (one "URL -> file" line per manual download)
//   - Markdown (checklist plus a table of all files)
//   - JSON
package report
