package tex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFootnotes(t *testing.T) {
	src := `\section{Einleitung}

Erster Satz\footnote{Vgl. \emph{Mueller}, S.~12.} und weiter\footnote{Siehe \url{https://gesetze.de}.}.

Zweiter Absatz\footnote{„Zitat` + "``" + ` -- so.}.`

	notes := ExtractFootnotes(src)
	require.Len(t, notes, 3)
	assert.Equal(t, "Vgl. Mueller, S. 12.", notes[0])
	assert.Equal(t, "Siehe <https://gesetze.de>.", notes[1])
}

func TestExtractFootnotes_StripsNestedMarkup(t *testing.T) {
	src := `Text\footnote{\textbf{\emph{stark betont}} und \zhs{民法典}.}`

	notes := ExtractFootnotes(src)
	require.Len(t, notes, 1)
	assert.Equal(t, "stark betont und 民法典.", notes[0])
}

func TestExtractFootnotes_RestoresTypography(t *testing.T) {
	src := `Text\footnote{` + "``" + `Zitat'' -- Seiten 10--12 --- fertig.}`

	notes := ExtractFootnotes(src)
	require.Len(t, notes, 1)
	assert.Equal(t, "“Zitat” – Seiten 10–12 — fertig.", notes[0])
}

func TestExtractFootnotes_None(t *testing.T) {
	notes := ExtractFootnotes(`\section{Titel}` + "\n\nText ohne Anmerkungen.")
	assert.Empty(t, notes)
}

func TestExtractFootnotes_DocumentOrder(t *testing.T) {
	src := `a\footnote{erste} b\footnote{zweite} c\footnote{dritte}`

	notes := ExtractFootnotes(src)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{"erste", "zweite", "dritte"}, notes)
}

func TestFormatFootnotes(t *testing.T) {
	assert.Equal(t, "erste\n\nzweite\n\n", FormatFootnotes([]string{"erste", "zweite"}))
	assert.Equal(t, "", FormatFootnotes(nil))
}
