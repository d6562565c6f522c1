package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	en, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "Success", en.Get(TitleSuccess))
	assert.Equal(t, "Cancel", en.Get(LabelCancel))

	es, err := New("es-AR")
	require.NoError(t, err)
	assert.Equal(t, "Aceptar", es.Get(LabelOK))
	assert.Equal(t, "Aviso", es.Get(TitleInfo))

	// Unknown languages fall back to English.
	fr, err := New("fr")
	require.NoError(t, err)
	assert.Equal(t, "Error", fr.Get(TitleError))
}

func TestZeroLabelsUseDefaults(t *testing.T) {
	var l Labels
	assert.Equal(t, "OK", l.Get(LabelOK))
}

func TestNewRejectsMalformedTag(t *testing.T) {
	_, err := New("not a tag!")
	assert.Error(t, err)
}
