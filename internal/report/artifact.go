package report

import (
	"fmt"
	"strings"

	"reportctl/internal/model"
)

const shortIDLen = 8

// FileName is the local name of a report artifact, derived from the
// repository name and a short prefix of the report id.
func FileName(displayName, id string) string {
	repo := model.RepoNameFromURL(displayName)
	repo = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, repo)

	short := []rune(id)
	if len(short) > shortIDLen {
		short = short[:shortIDLen]
	}
	return fmt.Sprintf("CodeAnalysis_%s_%s.pdf", repo, string(short))
}
