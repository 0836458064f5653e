package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ModuleKind classifies a build module by the android plugin it applies.
type ModuleKind string

// Available module kinds.
const (
	// ModuleKindLibrary applies com.android.library.
	ModuleKindLibrary ModuleKind = "library"

	// ModuleKindApplication applies com.android.application.
	ModuleKindApplication ModuleKind = "application"

	// ModuleKindOther applies neither android plugin.
	ModuleKindOther ModuleKind = "other"
)

// Plugin ids recognised when classifying modules.
const (
	PluginAndroidLibrary     = "com.android.library"
	PluginAndroidApplication = "com.android.application"
	PluginKotlinAndroid      = "kotlin-android"
	PluginKotlinAndroidFull  = "org.jetbrains.kotlin.android"
)

// IsAndroid returns true for library and application modules.
func (k ModuleKind) IsAndroid() bool {
	return k == ModuleKindLibrary || k == ModuleKindApplication
}

// String returns the string representation.
func (k ModuleKind) String() string {
	return string(k)
}

// KindFromPlugins derives the module kind from applied plugin ids.
// An application plugin wins over a library plugin.
func KindFromPlugins(plugins []string) ModuleKind {
	switch {
	case slices.Contains(plugins, PluginAndroidApplication):
		return ModuleKindApplication
	case slices.Contains(plugins, PluginAndroidLibrary):
		return ModuleKindLibrary
	default:
		return ModuleKindOther
	}
}

// HasKotlinPlugin reports whether any Kotlin android plugin is applied.
func HasKotlinPlugin(plugins []string) bool {
	return slices.Contains(plugins, PluginKotlinAndroid) ||
		slices.Contains(plugins, PluginKotlinAndroidFull)
}

// AndroidModule is the set of android build settings a rule may read or
// write. Getters and setters return ErrCapabilityAbsent when the underlying
// option does not exist on the module; a getter may still return the value
// the module declared.
type AndroidModule interface {
	Namespace() (string, error)
	SetNamespace(ns string) error

	JavaTarget() (string, error)
	SetJavaTarget(version string) error

	KotlinTarget() (string, error)
	SetKotlinTarget(version string) error
}

// Descriptor describes one build module.
// The store owns descriptors; rules mutate them during a single pass only.
type Descriptor struct {
	// Name is the unique module name.
	Name string

	// Kind is derived at load time and never changes.
	Kind ModuleKind

	// Dir is the module directory.
	Dir string

	// ManifestPath points to the module manifest. Empty when there is none.
	ManifestPath string

	// Android carries the android settings. Nil for ModuleKindOther.
	Android AndroidModule
}

// NewDescriptor builds a descriptor from applied plugin ids. Android modules
// receive an AndroidExtension seeded from ext; other modules get none.
// Kotlin options exist when a Kotlin plugin is applied or a Kotlin target
// is already declared.
func NewDescriptor(name, dir, manifestPath string, plugins []string, ext AndroidExtension) *Descriptor {
	d := &Descriptor{
		Name:         name,
		Kind:         KindFromPlugins(plugins),
		Dir:          dir,
		ManifestPath: manifestPath,
	}
	if d.Kind.IsAndroid() {
		ext.Kotlin = HasKotlinPlugin(plugins) || strings.TrimSpace(ext.KotlinTargetValue) != ""
		d.Android = &ext
	}
	return d
}

// AndroidCapable returns the android settings and whether the module has any.
func (d *Descriptor) AndroidCapable() (AndroidModule, bool) {
	if d == nil || !d.Kind.IsAndroid() || d.Android == nil {
		return nil, false
	}
	return d.Android, true
}

// Namespace returns the current namespace, or "" when absent.
func (d *Descriptor) Namespace() string {
	m, ok := d.AndroidCapable()
	if !ok {
		return ""
	}
	ns, err := m.Namespace()
	if err != nil {
		return ""
	}
	return ns
}

// JavaTarget returns the current Java target, or "" when unset.
// A value stored behind an absent capability is still returned.
func (d *Descriptor) JavaTarget() string {
	m, ok := d.AndroidCapable()
	if !ok {
		return ""
	}
	v, _ := m.JavaTarget()
	return v
}

// KotlinTarget returns the current Kotlin target, or "" when unset.
// A value stored behind an absent capability is still returned.
func (d *Descriptor) KotlinTarget() string {
	m, ok := d.AndroidCapable()
	if !ok {
		return ""
	}
	v, _ := m.KotlinTarget()
	return v
}

// Snapshot captures the descriptor state for reporting.
func (d *Descriptor) Snapshot() ModuleSnapshot {
	return ModuleSnapshot{
		Name:         d.Name,
		Kind:         d.Kind,
		Namespace:    d.Namespace(),
		JavaTarget:   d.JavaTarget(),
		KotlinTarget: d.KotlinTarget(),
	}
}

// AndroidExtension is the in-memory AndroidModule implementation.
type AndroidExtension struct {
	NamespaceValue    string
	JavaTargetValue   string
	KotlinTargetValue string

	// Kotlin is true when a Kotlin plugin is applied. Without it the module
	// has no Kotlin options.
	Kotlin bool
}

var _ AndroidModule = (*AndroidExtension)(nil)

// Namespace returns the namespace.
func (e *AndroidExtension) Namespace() (string, error) {
	return e.NamespaceValue, nil
}

// SetNamespace sets the namespace.
func (e *AndroidExtension) SetNamespace(ns string) error {
	e.NamespaceValue = ns
	return nil
}

// JavaTarget returns the Java source/target compatibility.
func (e *AndroidExtension) JavaTarget() (string, error) {
	return e.JavaTargetValue, nil
}

// SetJavaTarget sets the Java source/target compatibility.
func (e *AndroidExtension) SetJavaTarget(version string) error {
	e.JavaTargetValue = version
	return nil
}

// KotlinTarget returns the Kotlin jvmTarget. Without Kotlin options the
// stored value is returned together with ErrCapabilityAbsent.
func (e *AndroidExtension) KotlinTarget() (string, error) {
	if !e.Kotlin {
		return e.KotlinTargetValue, fmt.Errorf("kotlin options: %w", ErrCapabilityAbsent)
	}
	return e.KotlinTargetValue, nil
}

// SetKotlinTarget sets the Kotlin jvmTarget.
func (e *AndroidExtension) SetKotlinTarget(version string) error {
	if !e.Kotlin {
		return fmt.Errorf("kotlin options: %w", ErrCapabilityAbsent)
	}
	e.KotlinTargetValue = version
	return nil
}
