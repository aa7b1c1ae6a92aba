package datasource

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

// Saved object types.
const (
	DataSourceType = "data-source"
	CredentialType = "credential"
)

// DataSourceAttributes is the persisted shape of a data source.
type DataSourceAttributes struct {
	Title    string `json:"title"`
	Endpoint string `json:"endpoint"`
}

// CredentialAttributes is the persisted shape of a credential.
type CredentialAttributes struct {
	Title               string     `json:"title"`
	CredentialType      AuthType   `json:"credentialType"`
	CredentialMaterials *Materials `json:"credentialMaterials,omitempty"`
	Description         string     `json:"description,omitempty"`
}

// Materials holds basic auth secrets. Set only for AuthBasic.
type Materials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DataSource names a cluster endpoint and the credential used to reach it.
type DataSource struct {
	ID           string
	Title        string
	Endpoint     string
	CredentialID string
}

// Credential holds the authentication material for one or more data sources.
type Credential struct {
	ID          string
	Title       string
	Description string
	AuthType    AuthType
	Materials   Materials
}

// LogValue keeps the password out of logs.
func (c Credential) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("id", c.ID),
		slog.String("auth_type", string(c.AuthType)),
	}
	if c.Materials.Username != "" {
		attrs = append(attrs, slog.String("username", c.Materials.Username))
	}
	if c.Materials.Password != "" {
		attrs = append(attrs, slog.String("password", "[REDACTED]"))
	}
	return slog.GroupValue(attrs...)
}

// DecodeDataSource interprets obj as a data source. The record must carry
// exactly one reference and it must point at a credential.
func DecodeDataSource(obj *savedobjects.Object) (*DataSource, error) {
	attrs, err := savedobjects.Decode[DataSourceAttributes](obj)
	if err != nil {
		return nil, errors.Join(ErrMalformedRecord, err)
	}
	if attrs.Endpoint == "" {
		return nil, fmt.Errorf("%w: data source %q has no endpoint", ErrMalformedRecord, obj.ID)
	}
	if len(obj.References) != 1 {
		return nil, fmt.Errorf("%w: data source %q has %d references, want exactly one credential",
			ErrMalformedRecord, obj.ID, len(obj.References))
	}
	ref := obj.References[0]
	if ref.Type != CredentialType || ref.ID == "" {
		return nil, fmt.Errorf("%w: data source %q references %s %q, want a credential",
			ErrMalformedRecord, obj.ID, ref.Type, ref.ID)
	}

	return &DataSource{
		ID:           obj.ID,
		Title:        attrs.Title,
		Endpoint:     attrs.Endpoint,
		CredentialID: ref.ID,
	}, nil
}

// DecodeCredential interprets obj as a credential. The auth type is not
// checked here; Authenticator reports unsupported tags.
func DecodeCredential(obj *savedobjects.Object) (*Credential, error) {
	attrs, err := savedobjects.Decode[CredentialAttributes](obj)
	if err != nil {
		return nil, errors.Join(ErrMalformedRecord, err)
	}

	cred := &Credential{
		ID:          obj.ID,
		Title:       attrs.Title,
		Description: attrs.Description,
		AuthType:    attrs.CredentialType,
	}
	if attrs.CredentialMaterials != nil {
		cred.Materials = *attrs.CredentialMaterials
	}
	return cred, nil
}

// NewDataSourceObject builds the saved object for ds.
func NewDataSourceObject(ds DataSource) (*savedobjects.Object, error) {
	return savedobjects.NewObject(DataSourceType, ds.ID,
		DataSourceAttributes{Title: ds.Title, Endpoint: ds.Endpoint},
		savedobjects.Reference{ID: ds.CredentialID, Type: CredentialType, Name: "credential"},
	)
}

// NewCredentialObject builds the saved object for c. Materials are only
// written for basic credentials.
func NewCredentialObject(c Credential) (*savedobjects.Object, error) {
	attrs := CredentialAttributes{
		Title:          c.Title,
		CredentialType: c.AuthType,
		Description:    c.Description,
	}
	if c.AuthType == AuthBasic {
		m := c.Materials
		attrs.CredentialMaterials = &m
	}
	return savedobjects.NewObject(CredentialType, c.ID, attrs)
}
