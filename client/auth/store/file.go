package store

import (
	"bytes"
	"context"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/viant/afs"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
	"golang.org/x/oauth2"
	"os"
	"sync"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const fileMode os.FileMode = 0o600

// DefaultEncryptionKey selects the blowfish KMS with its built-in key.
const DefaultEncryptionKey = "blowfish://default"

// FileStore persists the credential pair as a JSON document at an afs URL
// (file://, mem://, ...), keeping an in-memory copy for reads. With an
// encryption key the document is sealed through scy instead.
type FileStore struct {
	mu      sync.Mutex
	URL     string
	key     string
	fs      afs.Service
	secrets *scy.Service
	memory  *memoryStore
}

// FileStoreOption customises a FileStore.
type FileStoreOption func(f *FileStore)

// WithEncryptionKey encrypts the stored pair with a scy KMS key URL, e.g. blowfish://default.
func WithEncryptionKey(key string) FileStoreOption {
	return func(f *FileStore) {
		f.key = key
	}
}

// sealedPair is the document scy encrypts.
type sealedPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// NewFileStore loads the pair stored at URL, if any.
func NewFileStore(ctx context.Context, URL string, options ...FileStoreOption) (*FileStore, error) {
	ret := &FileStore{URL: URL, fs: afs.New(), memory: newMemoryStore()}
	for _, option := range options {
		option(ret)
	}
	if ret.key != "" {
		ret.secrets = scy.New()
	}
	if err := ret.load(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *FileStore) AccessToken() string {
	return f.memory.AccessToken()
}

func (f *FileStore) RefreshToken() string {
	return f.memory.RefreshToken()
}

// SetPair persists the pair first; the in-memory copy changes only once it is stored.
func (f *FileStore) SetPair(pair *oauth2.Token) error {
	if pair == nil || pair.AccessToken == "" {
		return ErrEmptyAccessToken
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.save(context.Background(), pair); err != nil {
		return err
	}
	return f.memory.SetPair(pair)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.memory.Clear()
	ctx := context.Background()
	ok, err := f.fs.Exists(ctx, f.URL)
	if err != nil || !ok {
		return err
	}
	if err = f.fs.Delete(ctx, f.URL); err != nil {
		return fmt.Errorf("failed to delete session %v: %w", f.URL, err)
	}
	return nil
}

func (f *FileStore) save(ctx context.Context, pair *oauth2.Token) error {
	if f.secrets != nil {
		sealed := &sealedPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
		if err := f.secrets.Store(ctx, scy.NewSecret(sealed, f.resource())); err != nil {
			return fmt.Errorf("failed to persist encrypted session %v: %w", f.URL, err)
		}
		return nil
	}
	values := map[string]string{AccessTokenKey: pair.AccessToken}
	if pair.RefreshToken != "" {
		values[RefreshTokenKey] = pair.RefreshToken
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err = f.fs.Upload(ctx, f.URL, fileMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to persist session %v: %w", f.URL, err)
	}
	return nil
}

func (f *FileStore) load(ctx context.Context) error {
	ok, err := f.fs.Exists(ctx, f.URL)
	if err != nil {
		return fmt.Errorf("failed to check session %v: %w", f.URL, err)
	}
	if !ok {
		return nil
	}
	if f.secrets != nil {
		return f.unseal(ctx)
	}
	data, err := f.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return fmt.Errorf("failed to read session %v: %w", f.URL, err)
	}
	values := map[string]string{}
	if err = json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("invalid session document %v: %w", f.URL, err)
	}
	if values[AccessTokenKey] == "" {
		return nil
	}
	return f.memory.SetPair(&oauth2.Token{AccessToken: values[AccessTokenKey], RefreshToken: values[RefreshTokenKey]})
}

func (f *FileStore) unseal(ctx context.Context) error {
	secret, err := f.secrets.Load(ctx, f.resource())
	if err != nil {
		return fmt.Errorf("failed to decrypt session %v: %w", f.URL, err)
	}
	var sealed *sealedPair
	switch actual := secret.Target.(type) {
	case *sealedPair:
		sealed = actual
	case sealedPair:
		sealed = &actual
	default:
		return fmt.Errorf("invalid encrypted session %v: unexpected %T", f.URL, secret.Target)
	}
	if sealed.AccessToken == "" {
		return nil
	}
	return f.memory.SetPair(&oauth2.Token{AccessToken: sealed.AccessToken, RefreshToken: sealed.RefreshToken})
}

func (f *FileStore) resource() *scy.Resource {
	return scy.NewResource(&sealedPair{}, f.URL, f.key)
}
