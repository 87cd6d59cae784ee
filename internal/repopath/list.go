package repopath

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	commentPrefixConstant             = "#"
	openListErrorTemplateConstant     = "unable to open reference list %s: %w"
	readListErrorTemplateConstant     = "unable to read reference list: %w"
	listLineBufferInitialSizeConstant = 64 * 1024
	listLineBufferMaximumSizeConstant = 1024 * 1024
	emptyReferenceListMessageConstant = "reference list contains no .gitmodules paths"
	carriageReturnSuffixConstant      = "\r"
)

// ErrEmptyReferenceList indicates the list held only blank lines and comments.
var ErrEmptyReferenceList = errors.New(emptyReferenceListMessageConstant)

// ReferenceListReader parses newline-delimited .gitmodules paths.
type ReferenceListReader struct {
	homeExpander     *HomeExpander
	workingDirectory string
}

// NewReferenceListReader constructs a reader resolving relative entries against workingDirectory.
// An empty workingDirectory means the process working directory.
func NewReferenceListReader(homeExpander *HomeExpander, workingDirectory string) *ReferenceListReader {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &ReferenceListReader{homeExpander: homeExpander, workingDirectory: workingDirectory}
}

// ReadFile parses the list stored at listFilePath.
func (reader *ReferenceListReader) ReadFile(listFilePath string) ([]GitModulesReference, error) {
	listFile, openError := os.Open(reader.homeExpander.Expand(listFilePath))
	if openError != nil {
		return nil, fmt.Errorf(openListErrorTemplateConstant, listFilePath, openError)
	}
	defer listFile.Close()

	return reader.Read(listFile)
}

// Read parses one reference per line. Blank lines and lines starting with "#" are skipped;
// repeated references keep their first position.
func (reader *ReferenceListReader) Read(source io.Reader) ([]GitModulesReference, error) {
	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 0, listLineBufferInitialSizeConstant), listLineBufferMaximumSizeConstant)

	references := make([]GitModulesReference, 0)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		entry := strings.TrimSpace(strings.TrimSuffix(scanner.Text(), carriageReturnSuffixConstant))
		if len(entry) == 0 || strings.HasPrefix(entry, commentPrefixConstant) {
			continue
		}

		reference, referenceError := NewGitModulesReference(reader.resolveEntry(entry))
		if referenceError != nil {
			var invalidReference InvalidReferenceError
			if errors.As(referenceError, &invalidReference) {
				invalidReference.Reference = entry
				invalidReference.Line = lineNumber
				return nil, invalidReference
			}
			return nil, referenceError
		}
		references = append(references, reference)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(readListErrorTemplateConstant, scanError)
	}
	if len(references) == 0 {
		return nil, ErrEmptyReferenceList
	}

	return Deduplicate(references), nil
}

func (reader *ReferenceListReader) resolveEntry(entry string) string {
	expandedEntry := reader.homeExpander.Expand(entry)
	if filepath.IsAbs(expandedEntry) || len(reader.workingDirectory) == 0 {
		return expandedEntry
	}
	return filepath.Join(reader.workingDirectory, expandedEntry)
}

// Deduplicate drops references whose file path already appeared earlier.
func Deduplicate(references []GitModulesReference) []GitModulesReference {
	uniqueReferences := make([]GitModulesReference, 0, len(references))
	seenFilePaths := make(map[string]struct{}, len(references))
	for _, reference := range references {
		if _, seen := seenFilePaths[reference.FilePath()]; seen {
			continue
		}
		seenFilePaths[reference.FilePath()] = struct{}{}
		uniqueReferences = append(uniqueReferences, reference)
	}
	return uniqueReferences
}
