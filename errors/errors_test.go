package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestE(t *testing.T) {
	err := E("DirectoryHelper.Create", FileAlreadyExistsWithSameName, "Home/Child", Str("boom"))
	e, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, FileAlreadyExistsWithSameName, e.Kind)
	assert.Equal(t, "DirectoryHelper.Create", e.Op)
	assert.Equal(t, "Home/Child", e.Name)
	assert.Contains(t, e.Error(), "file already exists with same name")
}

func TestEPromotesInnerKind(t *testing.T) {
	inner := E("storage.save", NetworkError, Str("put failed"))
	outer := E("helper.update", inner)
	e := outer.(*Error)
	assert.Equal(t, NetworkError, e.Kind)
}

func TestIs(t *testing.T) {
	err := E("x", VersionNotFound)
	assert.True(t, Is(VersionNotFound, err))
	assert.False(t, Is(FileNotFound, err))
	assert.False(t, Is(FileNotFound, Str("plain error")))
}

func TestErrorStringNoError(t *testing.T) {
	e := &Error{}
	assert.Equal(t, "no error", e.Error())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Home -> Docs", Names("Home", "Docs"))
}
