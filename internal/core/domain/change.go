package domain

// ChangeKind identifies which module file changed.
type ChangeKind string

// Available change kinds.
const (
	ChangeDescriptor ChangeKind = "descriptor"
	ChangeManifest   ChangeKind = "manifest"
)

// ModuleChange reports a change to one of a module's files.
type ModuleChange struct {
	Module string
	Path   string
	Kind   ChangeKind
}
