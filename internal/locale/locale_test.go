package locale

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jobportal/jobportal-client/internal/storage"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("io")
}
func (brokenStore) Set(context.Context, string, string) error { return errors.New("io") }
func (brokenStore) Remove(context.Context, string) error      { return errors.New("io") }

func TestMatch(t *testing.T) {
	assert.Equal(t, language.Hindi, Match("hi"))
	assert.Equal(t, language.Marathi, Match("mr-IN"))
	assert.Equal(t, language.English, Match("en-GB"))
	assert.Equal(t, language.English, Match("ja"))
	assert.Equal(t, language.English, Match(""))
	assert.Equal(t, language.English, Match("%%%"))
}

func TestSelectPersists(t *testing.T) {
	store := storage.NewMemory()
	pref := NewPreference(store, nil)

	tag := pref.Select(context.Background(), "mr")
	assert.Equal(t, language.Marathi, tag)

	v, ok, err := store.Get(context.Background(), storage.KeyLanguage)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "mr", v)

	fresh := NewPreference(store, nil)
	assert.Equal(t, language.English, fresh.Current())
	assert.Equal(t, language.Marathi, fresh.Load(context.Background()))
}

func TestLoadDefaultsToEnglish(t *testing.T) {
	pref := NewPreference(storage.NewMemory(), nil)
	assert.Equal(t, language.English, pref.Load(context.Background()))
}

func TestStorageFailuresAreNotFatal(t *testing.T) {
	pref := NewPreference(brokenStore{}, nil)
	assert.Equal(t, language.English, pref.Load(context.Background()))
	assert.Equal(t, language.Hindi, pref.Select(context.Background(), "hi"))
	assert.Equal(t, language.Hindi, pref.Current())
}
