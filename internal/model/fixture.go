package model

// Fixture is a fixture-function definition discovered by the syntactic
// scanner. It is never executed, only pattern-matched.
type Fixture struct {
	// Name is the Python identifier of the fixture function.
	Name string

	// File is the fixture stub file that defines it.
	File Path

	// RelFile is File relative to the fixture root.
	RelFile Path

	// Module is the dotted Python module path used in import lines
	// (e.g. "tests.fixtures.orders_fixtures").
	Module string

	// Order is the definition order within File, starting at 0.
	Order int
}

// Conflict records a fixture name defined in more than one stub file.
type Conflict struct {
	Name      string
	First     Path
	Duplicate Path
}
