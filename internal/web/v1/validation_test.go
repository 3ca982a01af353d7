package v1

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePhotoDataURL(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	encoded := base64.StdEncoding.EncodeToString(payload)

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "empty input is no photo", input: "", want: nil},
		{name: "data URL", input: "data:image/png;base64," + encoded, want: payload},
		{name: "bare base64", input: encoded, want: payload},
		{name: "data URL without comma", input: "data:image/png;base64", wantErr: true},
		{name: "data URL not base64", input: "data:image/png," + encoded, wantErr: true},
		{name: "invalid base64", input: "data:image/png;base64,$$$", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodePhotoDataURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	assert.Equal(t, "", sanitizeValidationError(nil))
	assert.Equal(t, "Invalid request",
		sanitizeValidationError(errors.New("Key: 'basicInfoPayload.Email' Error:Field validation for 'Email' failed on the 'email' tag")))
	assert.Equal(t, "invalid email", sanitizeValidationError(errors.New("invalid email")))
}
