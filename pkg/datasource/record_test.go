package datasource_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/datasource/pkg/datasource"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

func TestDecodeDataSource(t *testing.T) {
	credRef := savedobjects.Reference{ID: "cred-1", Type: datasource.CredentialType}

	t.Run("valid", func(t *testing.T) {
		obj, err := savedobjects.NewObject(datasource.DataSourceType, "ds-1",
			datasource.DataSourceAttributes{Title: "logs", Endpoint: "https://e1:9200"}, credRef)
		require.NoError(t, err)

		ds, err := datasource.DecodeDataSource(obj)
		require.NoError(t, err)
		assert.Equal(t, &datasource.DataSource{
			ID: "ds-1", Title: "logs", Endpoint: "https://e1:9200", CredentialID: "cred-1",
		}, ds)
	})

	tests := []struct {
		name  string
		attrs string
		refs  []savedobjects.Reference
	}{
		{"no references", `{"endpoint":"https://e1"}`, nil},
		{"two references", `{"endpoint":"https://e1"}`, []savedobjects.Reference{credRef, credRef}},
		{"reference is not a credential", `{"endpoint":"https://e1"}`, []savedobjects.Reference{{ID: "x", Type: "index-pattern"}}},
		{"reference without id", `{"endpoint":"https://e1"}`, []savedobjects.Reference{{Type: datasource.CredentialType}}},
		{"missing endpoint", `{"title":"t"}`, []savedobjects.Reference{credRef}},
		{"bad attributes", `{"endpoint":42}`, []savedobjects.Reference{credRef}},
		{"empty attributes", ``, []savedobjects.Reference{credRef}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := &savedobjects.Object{
				ID: "ds-1", Type: datasource.DataSourceType,
				Attributes: json.RawMessage(tt.attrs), References: tt.refs,
			}
			_, err := datasource.DecodeDataSource(obj)
			assert.ErrorIs(t, err, datasource.ErrMalformedRecord)
		})
	}
}

func TestDecodeCredential(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		obj, err := datasource.NewCredentialObject(datasource.Credential{
			ID: "cred-1", Title: "admin", AuthType: datasource.AuthBasic,
			Materials: datasource.Materials{Username: "admin", Password: "pw"},
		})
		require.NoError(t, err)

		cred, err := datasource.DecodeCredential(obj)
		require.NoError(t, err)
		assert.Equal(t, datasource.AuthBasic, cred.AuthType)
		assert.Equal(t, datasource.Materials{Username: "admin", Password: "pw"}, cred.Materials)
	})

	t.Run("noauth without materials", func(t *testing.T) {
		obj, err := datasource.NewCredentialObject(datasource.Credential{
			ID: "cred-2", AuthType: datasource.AuthNoAuth,
			Materials: datasource.Materials{Username: "ignored"},
		})
		require.NoError(t, err)
		assert.NotContains(t, string(obj.Attributes), "credentialMaterials")

		cred, err := datasource.DecodeCredential(obj)
		require.NoError(t, err)
		assert.Equal(t, datasource.Materials{}, cred.Materials)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := datasource.DecodeCredential(&savedobjects.Object{
			ID: "c", Type: datasource.CredentialType, Attributes: json.RawMessage(`[]`),
		})
		assert.ErrorIs(t, err, datasource.ErrMalformedRecord)
	})
}

func TestCredential_Authenticator(t *testing.T) {
	t.Run("noauth", func(t *testing.T) {
		auth, err := (&datasource.Credential{AuthType: datasource.AuthNoAuth}).Authenticator()
		require.NoError(t, err)
		assert.Equal(t, datasource.NoAuth{}, auth)
		assert.Equal(t, datasource.AuthNoAuth, auth.Scheme())
	})

	t.Run("basic passes materials verbatim", func(t *testing.T) {
		cred := &datasource.Credential{AuthType: datasource.AuthBasic, Materials: datasource.Materials{Username: "u"}}
		auth, err := cred.Authenticator()
		require.NoError(t, err)
		assert.Equal(t, datasource.BasicAuth{Username: "u", Password: ""}, auth)
	})

	for _, tag := range []datasource.AuthType{"oidc", "", "Basic"} {
		t.Run("unsupported "+string(tag), func(t *testing.T) {
			_, err := (&datasource.Credential{AuthType: tag}).Authenticator()
			assert.ErrorIs(t, err, datasource.ErrUnsupportedAuthType)
		})
	}
}

func TestCredential_LogValue(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewJSONHandler(buf, nil))

	log.Info("resolved", slog.Any("credential", datasource.Credential{
		ID: "cred-1", AuthType: datasource.AuthBasic,
		Materials: datasource.Materials{Username: "admin", Password: "hunter2"},
	}))

	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), `"username":"admin"`)
}
