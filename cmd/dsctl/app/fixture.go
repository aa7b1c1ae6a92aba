package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/datasource/pkg/datasource"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

var errInvalidFixture = errors.New("invalid fixture")

// Fixture is the YAML document accepted by seed and check --file.
type Fixture struct {
	Credentials []CredentialFixture `yaml:"credentials"`
	DataSources []DataSourceFixture `yaml:"dataSources"`
}

type CredentialFixture struct {
	ID          string              `yaml:"id"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	AuthType    datasource.AuthType `yaml:"authType"`
	Username    string              `yaml:"username"`
	Password    string              `yaml:"password"`
}

type DataSourceFixture struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Endpoint   string `yaml:"endpoint"`
	Credential string `yaml:"credential"`
}

// ReadFixture decodes a fixture. Unknown keys are rejected.
func ReadFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(errInvalidFixture, err)
	}
	for _, ds := range f.DataSources {
		if ds.Endpoint == "" || ds.Credential == "" {
			return nil, fmt.Errorf("%w: data source %q needs an endpoint and a credential", errInvalidFixture, ds.ID)
		}
	}
	return &f, nil
}

// ReadFixtureFile opens and decodes path.
func ReadFixtureFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadFixture(file)
}

// Objects converts the fixture to records, credentials first.
func (f *Fixture) Objects() ([]*savedobjects.Object, error) {
	objs := make([]*savedobjects.Object, 0, len(f.Credentials)+len(f.DataSources))
	for _, c := range f.Credentials {
		obj, err := datasource.NewCredentialObject(datasource.Credential{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			AuthType:    c.AuthType,
			Materials:   datasource.Materials{Username: c.Username, Password: c.Password},
		})
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	for _, ds := range f.DataSources {
		obj, err := datasource.NewDataSourceObject(datasource.DataSource{
			ID:           ds.ID,
			Title:        ds.Title,
			Endpoint:     ds.Endpoint,
			CredentialID: ds.Credential,
		})
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// Apply writes every record to store and returns them with their ids set.
func (f *Fixture) Apply(ctx context.Context, store savedobjects.Store) ([]*savedobjects.Object, error) {
	objs, err := f.Objects()
	if err != nil {
		return nil, err
	}
	for _, obj := range objs {
		if err := store.Put(ctx, obj); err != nil {
			return nil, fmt.Errorf("write %s %q: %w", obj.Type, obj.ID, err)
		}
	}
	return objs, nil
}
