package svg

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

// requireWellFormed parses s as XML and fails the test if it is malformed.
func requireWellFormed(t *testing.T, s string) *etree.Document {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s), "output is not well-formed: %q", s)
	return doc
}
