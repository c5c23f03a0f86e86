package model

// AttributeRename maps an annotation attribute pair to its new attribute name.
type AttributeRename struct {
	Pair    NodeID
	NewName string
}

// Classification holds the semantic facts about one Tree that drive the
// rewrite. It is produced once per file and never modified afterwards.
type Classification struct {
	// ObsoleteImports are qualified import names to drop.
	ObsoleteImports []string
	// ObsoleteStaticImportMarkers drop any import whose name contains one of them.
	ObsoleteStaticImportMarkers []string

	UsesAssertCalls    bool
	UsesFailCall       bool
	UsesTestAnnotation bool

	BeforeMethods       []NodeID
	AfterMethods        []NodeID
	TestMethods         []NodeID
	DisabledTestMethods []NodeID

	// StaticallyImportedAssertionNames are assertion methods reachable without
	// a qualifier, in source order.
	StaticallyImportedAssertionNames []string

	AssertionCalls []NodeID
	FailCalls      []NodeID

	ExpectedOrTimeoutAttributes []AttributeRename

	LegacyBaseTypeReference NodeID
	LegacySuiteMethod       NodeID
	ExtraNodesToRemove      []NodeID
	SuperConstructorCall    NodeID
}

// HasTests reports whether the file needs the target test annotation.
func (c Classification) HasTests() bool {
	return len(c.TestMethods) > 0 || len(c.DisabledTestMethods) > 0 || c.UsesTestAnnotation
}

// StaticallyImported reports whether name is in StaticallyImportedAssertionNames.
func (c Classification) StaticallyImported(name string) bool {
	for _, n := range c.StaticallyImportedAssertionNames {
		if n == name {
			return true
		}
	}

	return false
}
