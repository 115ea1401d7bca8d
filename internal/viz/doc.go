// Package viz renders stopping-power curves in the terminal.
//
//   - [Preview] and [PreviewMany]: asciigraph line charts of log10 dE/dx
//   - [Summary]: styled per-variant panel with metrics and written files
//   - [SparklineChart]: compact one-line trend
package viz
