// Package report renders a propagation run report as a table or YAML document.
package report
