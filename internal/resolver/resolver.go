package resolver

import (
	"log/slog"
	"sort"
	"strings"
)

// MatchType identifies which resolution strategy produced a match.
type MatchType string

const (
	MatchExact           MatchType = "exact"
	MatchCaseInsensitive MatchType = "case-insensitive"
	MatchFilename        MatchType = "filename"
	MatchPartialPath     MatchType = "partial-path"
	MatchLevenshtein     MatchType = "levenshtein"
	MatchUnresolved      MatchType = "unresolved"
)

const (
	// DefaultMaxDistance bounds how far off a path may be and still
	// resolve via edit distance.
	DefaultMaxDistance = 5
	// DefaultSuggestionLimit caps the suggestion list for unresolved paths.
	DefaultSuggestionLimit = 5
)

// ResolvedFile is the outcome of resolving one requested path against the
// corpus of known files. Exactly one MatchType applies per input.
type ResolvedFile struct {
	RequestedPath string    `json:"requested_path"`
	Exists        bool      `json:"exists"`
	MatchType     MatchType `json:"match_type"`
	ResolvedPath  string    `json:"resolved_path,omitempty"`
	Distance      int       `json:"distance,omitempty"`
	Suggestions   []string  `json:"suggestions,omitempty"`
}

// Candidate pairs a corpus path with its edit distance from a target.
type Candidate struct {
	Path     string `json:"path"`
	Distance int    `json:"distance"`
}

// FileResolver resolves changed-file paths against a corpus of real file
// paths using a fixed ladder of strategies, most precise first.
type FileResolver struct {
	maxDistance     int
	suggestionLimit int
	logger          *slog.Logger
}

// NewFileResolver creates a resolver with the default distance and
// suggestion bounds.
func NewFileResolver() *FileResolver {
	return &FileResolver{
		maxDistance:     DefaultMaxDistance,
		suggestionLimit: DefaultSuggestionLimit,
		logger:          slog.Default().With("component", "resolver"),
	}
}

// Resolve applies each strategy in order and stops at the first success.
// When nothing matches the result is marked unresolved and carries up to
// suggestionLimit candidate names for the caller.
func (r *FileResolver) Resolve(requested string, available []string) ResolvedFile {
	// 1. Exact match
	for _, candidate := range available {
		if candidate == requested {
			return ResolvedFile{
				RequestedPath: requested,
				Exists:        true,
				MatchType:     MatchExact,
				ResolvedPath:  candidate,
			}
		}
	}

	// 2. Case-insensitive match
	lowerRequested := strings.ToLower(requested)
	for _, candidate := range available {
		if strings.ToLower(candidate) == lowerRequested {
			return ResolvedFile{
				RequestedPath: requested,
				Exists:        true,
				MatchType:     MatchCaseInsensitive,
				ResolvedPath:  candidate,
			}
		}
	}

	// 3. Filename-only match
	requestedName := baseName(requested)
	for _, candidate := range available {
		if baseName(candidate) == requestedName {
			return ResolvedFile{
				RequestedPath: requested,
				Exists:        true,
				MatchType:     MatchFilename,
				ResolvedPath:  candidate,
			}
		}
	}

	// 4. Partial-path match on the trailing segments
	requestedSegments := splitPath(requested)
	for _, candidate := range available {
		if tailMatches(splitPath(candidate), requestedSegments) {
			return ResolvedFile{
				RequestedPath: requested,
				Exists:        true,
				MatchType:     MatchPartialPath,
				ResolvedPath:  candidate,
			}
		}
	}

	// 5. Edit-distance match
	if matches := r.FindByLevenshtein(requested, available, r.maxDistance); len(matches) > 0 {
		best := matches[0]
		r.logger.Debug("fuzzy resolution", "requested", requested, "resolved", best.Path, "distance", best.Distance)
		return ResolvedFile{
			RequestedPath: requested,
			Exists:        true,
			MatchType:     MatchLevenshtein,
			ResolvedPath:  best.Path,
			Distance:      best.Distance,
		}
	}

	// 6. Unresolved, best-effort suggestions
	return ResolvedFile{
		RequestedPath: requested,
		Exists:        false,
		MatchType:     MatchUnresolved,
		Suggestions:   r.Suggestions(requested, available, r.suggestionLimit),
	}
}

// FindByLevenshtein returns the candidates within maxDistance of target,
// sorted ascending by distance. Ties keep the candidates' corpus order.
func (r *FileResolver) FindByLevenshtein(target string, candidates []string, maxDistance int) []Candidate {
	matches := []Candidate{}
	for _, candidate := range candidates {
		if d := Distance(target, candidate); d <= maxDistance {
			matches = append(matches, Candidate{Path: candidate, Distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}

// Suggestions returns up to limit candidates whose filename contains
// partial, case-insensitively, in corpus order.
func (r *FileResolver) Suggestions(partial string, available []string, limit int) []string {
	needle := strings.ToLower(partial)
	suggestions := []string{}
	for _, candidate := range available {
		if len(suggestions) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(baseName(candidate)), needle) {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions
}

func baseName(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// splitPath splits on both separators so Windows-style paths from the
// payments codebase resolve the same as POSIX ones.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// tailMatches reports whether the trailing len(tail) segments of full
// equal tail.
func tailMatches(full, tail []string) bool {
	if len(tail) == 0 || len(full) < len(tail) {
		return false
	}
	offset := len(full) - len(tail)
	for i, segment := range tail {
		if full[offset+i] != segment {
			return false
		}
	}
	return true
}
