package datasource

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/datasource/pkg/savedobjects"
	"github.com/dmitrymomot/datasource/pkg/secrets"
)

// ErrCredentialDecryption is returned when a sealed password cannot be opened.
var ErrCredentialDecryption = errors.New("credential materials could not be decrypted")

// WithDecryption wraps a getter so credential passwords sealed by
// SealCredential come back in plaintext. Other object types and plaintext
// passwords pass through unchanged.
func WithDecryption(next savedobjects.Getter, c *secrets.Cipher) savedobjects.Getter {
	return savedobjects.GetterFunc(func(ctx context.Context, objectType, id string) (*savedobjects.Object, error) {
		obj, err := next.Get(ctx, objectType, id)
		if err != nil || objectType != CredentialType {
			return obj, err
		}
		if err := transformPassword(obj, c.Open, secrets.IsSealed); err != nil {
			return nil, errors.Join(ErrCredentialDecryption, err)
		}
		return obj, nil
	})
}

// SealCredential encrypts the password of a credential object in place.
// Passwords this cipher already sealed are left alone. A plaintext password
// starting with secrets.SealedPrefix is rejected with ErrReservedPasswordPrefix,
// since WithDecryption would later try to open it.
func SealCredential(obj *savedobjects.Object, c *secrets.Cipher) error {
	if obj == nil || obj.Type != CredentialType {
		return nil
	}
	return transformPassword(obj, func(s string) (string, error) {
		if !secrets.IsSealed(s) {
			return c.Seal(s)
		}
		if _, err := c.Open(s); err != nil {
			return "", errors.Join(ErrReservedPasswordPrefix, err)
		}
		return s, nil
	}, func(string) bool { return true })
}

// EncryptingStore seals credentials on Put and opens them on Get.
type EncryptingStore struct {
	savedobjects.Getter
	next   savedobjects.Store
	cipher *secrets.Cipher
}

// NewEncryptingStore wraps next.
func NewEncryptingStore(next savedobjects.Store, c *secrets.Cipher) *EncryptingStore {
	return &EncryptingStore{
		Getter: WithDecryption(next, c),
		next:   next,
		cipher: c,
	}
}

// Put seals a copy of obj and stores it. Nothing is written when sealing
// fails, including for a plaintext password with secrets.SealedPrefix.
func (s *EncryptingStore) Put(ctx context.Context, obj *savedobjects.Object) error {
	if obj == nil {
		return s.next.Put(ctx, obj)
	}
	sealed := *obj
	sealed.Attributes = append(json.RawMessage(nil), obj.Attributes...)
	if err := SealCredential(&sealed, s.cipher); err != nil {
		return err
	}
	if err := s.next.Put(ctx, &sealed); err != nil {
		return err
	}
	obj.ID = sealed.ID
	return nil
}

// transformPassword rewrites credentialMaterials.password when match accepts
// it. Unknown attributes are preserved.
func transformPassword(obj *savedobjects.Object, fn func(string) (string, error), match func(string) bool) error {
	if len(obj.Attributes) == 0 {
		return nil
	}

	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(obj.Attributes, &attrs); err != nil {
		return errors.Join(ErrMalformedRecord, err)
	}
	rawMaterials, ok := attrs["credentialMaterials"]
	if !ok || string(rawMaterials) == "null" {
		return nil
	}

	var materials map[string]any
	if err := json.Unmarshal(rawMaterials, &materials); err != nil {
		return errors.Join(ErrMalformedRecord, err)
	}
	password, ok := materials["password"].(string)
	if !ok || password == "" || !match(password) {
		return nil
	}

	out, err := fn(password)
	if err != nil {
		return err
	}
	materials["password"] = out

	if attrs["credentialMaterials"], err = json.Marshal(materials); err != nil {
		return err
	}
	if obj.Attributes, err = json.Marshal(attrs); err != nil {
		return err
	}
	return nil
}
