package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// ProfileStore loads and saves conversion profiles as YAML documents.
type ProfileStore interface {
	// LoadProfile reads the profile at path. Keys missing from the document
	// keep their value from model.DefaultProfile; unknown keys are an error.
	LoadProfile(path m.Path) (m.Profile, error)
	SaveProfile(path m.Path, profile m.Profile) error
	EncodeProfile(profile m.Profile) ([]byte, error)
}

type profileStore struct{}

// NewProfileStore creates a YAML backed ProfileStore.
func NewProfileStore() ProfileStore {
	return &profileStore{}
}

func (s *profileStore) LoadProfile(path m.Path) (m.Profile, error) {
	// #nosec G304 - path is the profile file named by the user
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Profile{}, fmt.Errorf("read profile: %w", err)
	}

	profile := m.DefaultProfile()

	// yaml.v3 merges into a non-nil map; a renames mapping in the document
	// replaces the defaults instead.
	renames := profile.AttributeRenames
	profile.AttributeRenames = nil

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&profile); err != nil && !errors.Is(err, io.EOF) {
		return m.Profile{}, fmt.Errorf("decode profile %s: %w", path, err)
	}

	if profile.AttributeRenames == nil {
		profile.AttributeRenames = renames
	}

	if err := profile.Validate(); err != nil {
		return m.Profile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return profile, nil
}

func (s *profileStore) SaveProfile(path m.Path, profile m.Profile) error {
	data, err := s.EncodeProfile(profile)
	if err != nil {
		return err
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	return nil
}

func (s *profileStore) EncodeProfile(profile m.Profile) ([]byte, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(profile); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	return buf.Bytes(), nil
}
