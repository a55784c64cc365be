package model

// Path represents a file system path.
type Path string

// Layout describes the directory roots a scaffolding sweep operates on.
// All paths are as configured by the user (flags or config file) and are
// joined, never rewritten, by the domain layer.
type Layout struct {
	// SourceRoot is the root of the Python source tree (e.g. "src").
	SourceRoot Path

	// TestRoot is the root of the mirrored test tree (e.g. "tests").
	TestRoot Path

	// FixtureRoot is the root of the mirrored fixture tree
	// (e.g. "tests/fixtures").
	FixtureRoot Path

	// SharedFile is the shared fixture-import file holding the managed
	// region (e.g. "tests/fixtures/conftest.py").
	SharedFile Path
}

// SourceFile is a scanned file under the source root.
type SourceFile struct {
	FullPath Path
	RelPath  Path // relative to Layout.SourceRoot
}

// StubKind distinguishes the two mirrored trees a stub can live in.
type StubKind string

const (
	// StubTest is a generated test file under the test root.
	StubTest StubKind = "test"

	// StubFixture is a generated fixture file under the fixture root.
	StubFixture StubKind = "fixture"
)

// Stub is a generated placeholder file mirrored from a source file.
type Stub struct {
	Kind     StubKind
	FullPath Path
	RelPath  Path // relative to the stub's own root
	Source   Path // relative source path the stub mirrors
}
