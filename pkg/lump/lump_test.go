package lump

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"1.0.0", Version{Major: 1}, false},
		{"2.13.7", Version{2, 13, 7}, false},
		{"1.0", Version{}, true},
		{"1.0.0.0", Version{}, true},
		{"1.x.0", Version{}, true},
		{"1.256.0", Version{}, true},
		{"", Version{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParseType(t *testing.T) {
	got, err := ParseType("GameConf")
	require.NoError(t, err)
	assert.Equal(t, TypeGameConf, got)

	_, err = ParseType("mapinfo")
	require.ErrorIs(t, err, ErrUnknownLumpType)
}

func TestNew_EveryType(t *testing.T) {
	for _, typ := range Types() {
		l, err := New(typ)
		require.NoError(t, err, typ)
		assert.Equal(t, typ, l.Data.LumpType())
		assert.Equal(t, DefaultVersion, l.Version)
		assert.NoError(t, l.Validate(), typ)
	}
}

func TestDecode_Envelope(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"unknown type", `{"type":"mapinfo","version":"1.0.0","metadata":{},"data":{}}`, ErrUnknownLumpType},
		{"bad version", `{"type":"gameconf","version":"1","metadata":{},"data":{}}`, ErrInvalidVersion},
		{"missing data", `{"type":"gameconf","version":"1.0.0","metadata":{}}`, ErrMissingData},
		{"null data", `{"type":"gameconf","version":"1.0.0","metadata":{},"data":null}`, ErrMissingData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tt.doc))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_MetadataDefaultsToEmptyObject(t *testing.T) {
	l, err := DecodeBytes([]byte(`{"type":"finale","version":"1.0.0","data":{"type":0,"music":"D_VICTOR","background":"BOSSBACK","donextmap":false,"bunny":null,"castrollcall":null}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(l.Metadata))
}

func TestEncode_KeepsMetadata(t *testing.T) {
	l, err := New(TypeDemoLoop)
	require.NoError(t, err)
	l.Metadata = json.RawMessage(`{"author":"someone"}`)

	var buf bytes.Buffer
	require.NoError(t, l.Encode(&buf, "  "))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"author":"someone"}`, string(back.Metadata))
	assert.Equal(t, TypeDemoLoop, back.Type)
}

func TestValidate_TypeMismatch(t *testing.T) {
	l := &Lump{Type: TypeSkyDefs, Version: DefaultVersion, Data: &Finale{}}
	require.ErrorIs(t, l.Validate(), ErrUnknownLumpType)

	l = &Lump{Type: TypeSkyDefs}
	require.ErrorIs(t, l.Validate(), ErrMissingData)
}

func TestYAML_RoundTrip(t *testing.T) {
	l, err := DecodeBytes([]byte(gameconfDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, l.EncodeYAML(&buf))
	assert.Contains(t, buf.String(), "options: |-\n")
	assert.Contains(t, buf.String(), "version: 1.0.0\n")

	back, err := DecodeYAML(&buf)
	require.NoError(t, err)
	gc := back.Data.(*GameConf)
	assert.True(t, gc.Options.Equal(l.Data.(*GameConf).Options))
	assert.Equal(t, "Test", *gc.Title)
}
