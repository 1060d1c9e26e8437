package htmlcase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromIdentifier(t *testing.T) {
	t.Parallel()
	testCases := map[string]string{
		"":               "",
		"a":              "a",
		"Href":           "href",
		"maxLength":      "max-length",
		"InputTagHelper": "input-tag-helper",
		"HTMLElement":    "html-element",
		"ID":             "id",
		"UserID":         "user-id",
		"asp_for":        "asp-for",
	}
	for in, want := range testCases {
		require.Equal(t, want, FromIdentifier(in), "input %q", in)
	}
}

func TestElementName(t *testing.T) {
	t.Parallel()
	require.Equal(t, "anchor", ElementName("AnchorTagHelper"))
	require.Equal(t, "form-field", ElementName("FormFieldTagHelper"))
	require.Equal(t, "tag-helper", ElementName("TagHelper"))
	require.Equal(t, "link", ElementName("Link"))
}
