package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenglaafi-be/internal/dto"
)

func TestCorpusHashIgnoresDocumentOrder(t *testing.T) {
	a := dto.CorpusDocument{Id: "doc-1", Title: "Paludisme", Text: "texte a"}
	b := dto.CorpusDocument{Id: "doc-2", Title: "Dengue", Text: "texte b"}

	assert.Equal(t,
		corpusHash([]dto.CorpusDocument{a, b}),
		corpusHash([]dto.CorpusDocument{b, a}),
	)
}

func TestCorpusHashChangesWithContent(t *testing.T) {
	docs := []dto.CorpusDocument{{Id: "doc-1", Title: "Paludisme", Text: "texte"}}
	base := corpusHash(docs)

	edited := []dto.CorpusDocument{{Id: "doc-1", Title: "Paludisme", Text: "texte modifié"}}
	assert.NotEqual(t, base, corpusHash(edited))

	retitled := []dto.CorpusDocument{{Id: "doc-1", Title: "Dengue", Text: "texte"}}
	assert.NotEqual(t, base, corpusHash(retitled))
}

func TestCorpusHashIgnoresMetadataFields(t *testing.T) {
	plain := []dto.CorpusDocument{{Id: "doc-1", Title: "Paludisme", Text: "texte"}}
	withMeta := []dto.CorpusDocument{{Id: "doc-1", Title: "Paludisme", Text: "texte", SourceLabel: "OMS", Url: "https://example.org"}}

	assert.Equal(t, corpusHash(plain), corpusHash(withMeta))
}

func TestDocumentIdIsDeterministic(t *testing.T) {
	assert.Equal(t, documentId("malaria-fr-001"), documentId("malaria-fr-001"))
	assert.NotEqual(t, documentId("malaria-fr-001"), documentId("malaria-fr-002"))

	parsed := documentId("8d8ac610-566d-4ef0-9c22-186b2a5ed793")
	assert.Equal(t, "8d8ac610-566d-4ef0-9c22-186b2a5ed793", parsed.String())
}

func TestLoadCorpusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	content := `[
		{"id": "doc-1", "title": "Paludisme", "text": "Le paludisme est transmis par les moustiques.", "source": "OMS", "url": "https://example.org/palu"},
		{"id": "doc-2", "title": "Neem", "text": "Le neem est une plante médicinale."}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	docs, err := loadCorpusFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Paludisme", docs[0].Title)
	assert.Equal(t, "OMS", docs[0].SourceLabel)
	assert.Empty(t, docs[1].Url)
}

func TestLoadCorpusFileErrors(t *testing.T) {
	_, err := loadCorpusFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = loadCorpusFile(path)
	assert.Error(t, err)
}
