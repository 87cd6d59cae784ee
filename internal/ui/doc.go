// Package ui renders git activity for people watching a urisync run in a terminal.
package ui
