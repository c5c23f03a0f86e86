package model

import (
	"fmt"
	"strings"
)

// Profile describes one source/target framework pair: which legacy names the
// classifier looks for and which target names the engine writes. The default
// profile converts JUnit 3/4 tests to TestNG.
type Profile struct {
	Name string `yaml:"name"`

	// Legacy side.
	LegacyPackages          []string `yaml:"legacy_packages"`
	LegacyBaseTypes         []string `yaml:"legacy_base_types"`
	LegacyAssertionTypes    []string `yaml:"legacy_assertion_types"`
	LegacyBeforeAnnotation  string   `yaml:"legacy_before_annotation"`
	LegacyAfterAnnotation   string   `yaml:"legacy_after_annotation"`
	LegacyTestAnnotation    string   `yaml:"legacy_test_annotation"`
	LegacyIgnoreAnnotation  string   `yaml:"legacy_ignore_annotation"`
	LegacySetUpMethod       string   `yaml:"legacy_setup_method"`
	LegacyTearDownMethod    string   `yaml:"legacy_teardown_method"`
	LegacySuiteMethod       string   `yaml:"legacy_suite_method"`
	LegacyTestMethodPrefix  string   `yaml:"legacy_test_method_prefix"`
	AssertionMethodPrefixes []string `yaml:"assertion_method_prefixes"`
	FailMethod              string   `yaml:"fail_method"`

	ObsoleteImports             []string `yaml:"obsolete_imports"`
	ObsoleteStaticImportMarkers []string `yaml:"obsolete_static_import_markers"`

	// ImplicitRemovalMarker is co-removed whenever a named legacy annotation is replaced.
	ImplicitRemovalMarker string `yaml:"implicit_removal_marker"`

	// Target side.
	AssertionHelper  string            `yaml:"assertion_helper"`
	FailHelper       string            `yaml:"fail_helper"`
	BeforeAnnotation string            `yaml:"before_annotation"`
	TestAnnotation   string            `yaml:"test_annotation"`
	AfterAnnotation  string            `yaml:"after_annotation"`
	DisabledKey      string            `yaml:"disabled_attribute"`
	AttributeRenames map[string]string `yaml:"attribute_renames"`
}

// DefaultProfile returns the JUnit to TestNG profile.
func DefaultProfile() Profile {
	return Profile{
		Name:                    "junit-testng",
		LegacyPackages:          []string{"junit.framework", "org.junit"},
		LegacyBaseTypes:         []string{"TestCase", "junit.framework.TestCase"},
		LegacyAssertionTypes:    []string{"Assert", "junit.framework.Assert", "org.junit.Assert", "TestCase", "junit.framework.TestCase"},
		LegacyBeforeAnnotation:  "@Before",
		LegacyAfterAnnotation:   "@After",
		LegacyTestAnnotation:    "@Test",
		LegacyIgnoreAnnotation:  "@Ignore",
		LegacySetUpMethod:       "setUp",
		LegacyTearDownMethod:    "tearDown",
		LegacySuiteMethod:       "suite",
		LegacyTestMethodPrefix:  "test",
		AssertionMethodPrefixes: []string{"assert"},
		FailMethod:              "fail",
		ObsoleteImports: []string{
			"junit.framework.Assert",
			"junit.framework.Test",
			"junit.framework.TestCase",
			"junit.framework.TestSuite",
			"org.junit.After",
			"org.junit.Before",
			"org.junit.Test",
			"org.junit.Ignore",
		},
		ObsoleteStaticImportMarkers: []string{"org.junit.Assert"},
		ImplicitRemovalMarker:       "@Override",
		AssertionHelper:             "org.testng.AssertJUnit",
		FailHelper:                  "org.testng.Assert",
		BeforeAnnotation:            "org.testng.annotations.BeforeMethod",
		TestAnnotation:              "org.testng.annotations.Test",
		AfterAnnotation:             "org.testng.annotations.AfterMethod",
		DisabledKey:                 "enabled",
		AttributeRenames: map[string]string{
			"expected": "expectedExceptions",
			"timeout":  "timeOut",
		},
	}
}

// Validate checks that every target name is present.
func (p Profile) Validate() error {
	required := map[string]string{
		"assertion_helper":  p.AssertionHelper,
		"fail_helper":       p.FailHelper,
		"before_annotation": p.BeforeAnnotation,
		"test_annotation":   p.TestAnnotation,
		"after_annotation":  p.AfterAnnotation,
	}

	for _, key := range []string{"assertion_helper", "fail_helper", "before_annotation", "test_annotation", "after_annotation"} {
		if strings.TrimSpace(required[key]) == "" {
			return fmt.Errorf("profile %q: %s is required", p.Name, key)
		}
	}

	return nil
}

// SimpleName returns the last segment of a qualified name.
func SimpleName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}

	return qualified
}
