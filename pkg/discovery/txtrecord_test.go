package discovery

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePanelTXT(t *testing.T) {
	info := &PanelInfo{
		Name:        "Room 4",
		Version:     "1.2.0",
		CodecKey:    "codec-1",
		CameraCount: 3,
		SessionID:   "abc",
		Ready:       true,
	}

	txt := EncodePanelTXT(info)
	assert.Equal(t, "1", txt[TXTKeyReady])

	assert.Equal(t, "Room 4", txt[TXTKeyName])
	assert.Equal(t, "1.2.0", txt[TXTKeyVersion])
	assert.Equal(t, "codec-1", txt[TXTKeyCodec])
	assert.Equal(t, "3", txt[TXTKeyCameras])
	assert.Equal(t, "abc", txt[TXTKeySession])
}

func TestEncodePanelTXTOmitsEmptySession(t *testing.T) {
	txt := EncodePanelTXT(&PanelInfo{Name: "p", Version: "1", CodecKey: "c"})
	if _, ok := txt[TXTKeySession]; ok {
		t.Errorf("session key present for empty session ID")
	}
}

func TestDecodePanelTXTRoundTrip(t *testing.T) {
	in := &PanelInfo{Name: "Room 4", Version: "1.2.0", CodecKey: "codec-1", CameraCount: 2, Ready: true}

	out, err := DecodePanelTXT(EncodePanelTXT(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodePanelTXTErrors(t *testing.T) {
	tests := []struct {
		name string
		txt  TXTRecordMap
		want error
	}{
		{"missing name", TXTRecordMap{TXTKeyVersion: "1", TXTKeyCodec: "c"}, ErrMissingRequired},
		{"empty name", TXTRecordMap{TXTKeyName: "", TXTKeyVersion: "1", TXTKeyCodec: "c"}, ErrMissingRequired},
		{"missing version", TXTRecordMap{TXTKeyName: "p", TXTKeyCodec: "c"}, ErrMissingRequired},
		{"missing codec", TXTRecordMap{TXTKeyName: "p", TXTKeyVersion: "1"}, ErrMissingRequired},
		{"bad count", TXTRecordMap{TXTKeyName: "p", TXTKeyVersion: "1", TXTKeyCodec: "c", TXTKeyCameras: "x"}, ErrInvalidTXTRecord},
		{"negative count", TXTRecordMap{TXTKeyName: "p", TXTKeyVersion: "1", TXTKeyCodec: "c", TXTKeyCameras: "-1"}, ErrInvalidTXTRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePanelTXT(tt.txt)
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodePanelTXT() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTXTRecordsToStringsSorted(t *testing.T) {
	got := TXTRecordsToStrings(TXTRecordMap{"b": "2", "a": "1", "c": ""})
	assert.Equal(t, []string{"a=1", "b=2", "c="}, got)
}

func TestStringsToTXTRecords(t *testing.T) {
	got := StringsToTXTRecords([]string{"name=Room=4", "flag", "", "ver=1"})

	assert.Equal(t, TXTRecordMap{"name": "Room=4", "flag": "", "ver": "1"}, got)
}

func TestValidateInstanceName(t *testing.T) {
	if err := ValidateInstanceName("Room 4"); err != nil {
		t.Errorf("ValidateInstanceName() = %v, want nil", err)
	}
	if err := ValidateInstanceName(""); !errors.Is(err, ErrInvalidInstanceName) {
		t.Errorf("ValidateInstanceName(\"\") = %v, want %v", err, ErrInvalidInstanceName)
	}
	long := strings.Repeat("x", MaxInstanceNameLen+1)
	if err := ValidateInstanceName(long); !errors.Is(err, ErrInvalidInstanceName) {
		t.Errorf("ValidateInstanceName(long) = %v, want %v", err, ErrInvalidInstanceName)
	}
}

func TestMergeAddresses(t *testing.T) {
	got := mergeAddresses([]string{"10.0.0.1"}, []string{"10.0.0.1", "fe80::1"})
	assert.Equal(t, []string{"10.0.0.1", "fe80::1"}, got)
}
