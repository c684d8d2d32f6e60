package config

// Version is the current Quill version. Set at build time via -ldflags.
var Version = "0.3.0"

// SourceFileExt is the recognized source file extension.
const SourceFileExt = ".ql"

// ManifestFileName is the project manifest looked up at the root of a
// module tree.
const ManifestFileName = "quill.yaml"

// DefaultSourceGlob matches all source files under a project root when
// the manifest does not narrow them down.
const DefaultSourceGlob = "**/*" + SourceFileExt

// TrimSourceExt removes the source extension from a filename. Returns
// the original string if the extension does not match.
func TrimSourceExt(name string) string {
	if len(name) >= len(SourceFileExt) && name[len(name)-len(SourceFileExt):] == SourceFileExt {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}
