package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "great phone", Fold("GREAT Phone"))
	assert.Equal(t, Fold("Straße"), Fold("STRASSE"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("  Great product!\n"), Key("great PRODUCT!"))
	assert.NotEqual(t, Key("great product"), Key("great  product"))
}
