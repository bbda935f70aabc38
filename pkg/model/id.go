package model

import "strings"

// Placeholder and marker conventions. Entity ids have the form
// <Kind>:<Name>:<FilePath>; File nodes use File:<FilePath>. Relationships
// created before their target is known carry the UnknownPath segment or an
// Unknown kind hint and are rewritten once by the resolver. External,
// Unresolved and Ambiguous markers are terminal.
const (
	UnknownPath      = "UNKNOWN"
	KindHintNone     = "Unknown"
	KindHintExport   = "UnknownExport"
	externalPrefix   = "External:"
	unresolvedPrefix = "Unresolved:"
	ambiguousPrefix  = "Ambiguous:"
	filePrefix       = "File:"
)

// EntityID builds the id of a structural entity node.
func EntityID(kind Kind, name, filePath string) string {
	return string(kind) + ":" + name + ":" + filePath
}

// FileID builds the id of a File node from its project-relative path.
func FileID(relPath string) string {
	return filePrefix + relPath
}

// PlaceholderID builds a relationship target for an entity whose declaring
// file is not yet known. The hint is a Kind name, KindHintNone, or
// KindHintExport.
func PlaceholderID(hint, name string) string {
	return hint + ":" + name + ":" + UnknownPath
}

// ExternalRef marks an import that resolved outside the project. It carries
// the original specifier text and is never rewritten.
func ExternalRef(specifier string) string {
	return externalPrefix + specifier
}

// UnresolvedRef marks a placeholder that matched no node by name.
func UnresolvedRef(name string) string {
	return unresolvedPrefix + name
}

// AmbiguousRef marks a placeholder that matched more than one node by name.
func AmbiguousRef(name string) string {
	return ambiguousPrefix + name
}

// IsExternalRef reports whether a target id is an external-reference marker.
func IsExternalRef(targetID string) bool {
	return strings.HasPrefix(targetID, externalPrefix)
}

// SplitID breaks an entity or placeholder id into its kind, name and path
// segments. Everything after the second colon is the path.
func SplitID(id string) (kind, name, path string, ok bool) {
	first := strings.Index(id, ":")
	if first < 0 {
		return "", "", "", false
	}
	rest := id[first+1:]
	second := strings.Index(rest, ":")
	if second < 0 {
		return "", "", "", false
	}
	return id[:first], rest[:second], rest[second+1:], true
}

// IsPlaceholder reports whether a target id still needs resolution: its
// path segment is unknown, or its kind segment is a hint rather than a
// concrete kind. External markers are final and never placeholders.
func IsPlaceholder(targetID string) bool {
	if IsExternalRef(targetID) {
		return false
	}
	kind, _, path, ok := SplitID(targetID)
	if !ok {
		return false
	}
	return path == UnknownPath || kind == KindHintNone || kind == KindHintExport
}
