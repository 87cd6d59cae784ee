// Package utils holds the configuration and logging plumbing shared by the urisync CLI.
package utils
