package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratolab/strato/internal/db/models"
)

func TestDecodeContainer(t *testing.T) {
	codec := NewMetadataXMLCodec()

	tests := []struct {
		name     string
		body     string
		expected models.Metadata
	}{
		{
			name: "container_with_entries",
			body: `<metadata xmlns="` + XMLNSV11 + `">
				<meta key="one">1</meta>
				<meta key="two">2</meta>
			</metadata>`,
			expected: models.Metadata{"one": "1", "two": "2"},
		},
		{
			name:     "empty_container",
			body:     `<metadata xmlns="` + XMLNSV11 + `"/>`,
			expected: models.Metadata{},
		},
		{
			name:     "missing_container_decodes_to_empty",
			body:     `<server name="x"><meta key="one">1</meta></server>`,
			expected: models.Metadata{},
		},
		{
			name: "duplicate_keys_last_wins",
			body: `<metadata>
				<meta key="k">first</meta>
				<meta key="k">second</meta>
			</metadata>`,
			expected: models.Metadata{"k": "second"},
		},
		{
			name:     "foreign_children_ignored",
			body:     `<metadata><meta key="k">v</meta><note>ignored</note></metadata>`,
			expected: models.Metadata{"k": "v"},
		},
		{
			name:     "escaped_values_unescaped",
			body:     `<metadata><meta key="k">a &amp; b &lt; c</meta></metadata>`,
			expected: models.Metadata{"k": "a & b < c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata, err := codec.DecodeContainer([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, metadata)
		})
	}
}

func TestDecodeContainerMalformed(t *testing.T) {
	codec := NewMetadataXMLCodec()

	for _, body := range []string{"", "<metadata>", "not xml at all <", "<a><b></a></b>"} {
		_, err := codec.DecodeContainer([]byte(body))
		var malformed *MalformedXMLError
		require.ErrorAs(t, err, &malformed, "body %q should be rejected", body)
	}
}

func TestDecodeItem(t *testing.T) {
	codec := NewMetadataXMLCodec()

	tests := []struct {
		name     string
		body     string
		expected models.Metadata
	}{
		{
			name:     "bare_meta_element",
			body:     `<meta xmlns="` + XMLNSV11 + `" key="k">v</meta>`,
			expected: models.Metadata{"k": "v"},
		},
		{
			name:     "non_meta_root_decodes_to_empty",
			body:     `<metadata><meta key="k">v</meta></metadata>`,
			expected: models.Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata, err := codec.DecodeItem([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, metadata)
		})
	}
}

func TestEncodeContainer(t *testing.T) {
	codec := NewMetadataXMLCodec()

	out, err := codec.EncodeContainer(models.Metadata{"b": "2", "a": "1"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<metadata xmlns="`+XMLNSV11+`">`)
	assert.Contains(t, out, `<meta key="a">1</meta>`)
	assert.Contains(t, out, `<meta key="b">2</meta>`)
}

func TestEncodeItem(t *testing.T) {
	codec := NewMetadataXMLCodec()

	out, err := codec.EncodeItem("color", "blue")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<meta xmlns="`+XMLNSV11+`" key="color">blue</meta>`)
	assert.NotContains(t, out, "<metadata")
}

func TestEncodeNone(t *testing.T) {
	codec := NewMetadataXMLCodec()
	assert.Equal(t, "", codec.EncodeNone())
}

func TestContainerRoundTrip(t *testing.T) {
	codec := NewMetadataXMLCodec()

	original := models.Metadata{
		"plain":   "value",
		"empty":   "",
		"special": `a & b < c > d "quoted"`,
		"spaced":  "  padded  ",
	}

	encoded, err := codec.EncodeContainer(original)
	require.NoError(t, err)

	decoded, err := codec.DecodeContainer([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestItemRoundTrip(t *testing.T) {
	codec := NewMetadataXMLCodec()

	encoded, err := codec.EncodeItem("k", "v & w")
	require.NoError(t, err)

	decoded, err := codec.DecodeItem([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, models.Metadata{"k": "v & w"}, decoded)
}
