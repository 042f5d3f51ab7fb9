package discovery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodePanelTXT creates the TXT records for a panel.
func EncodePanelTXT(info *PanelInfo) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyName:    info.Name,
		TXTKeyVersion: info.Version,
		TXTKeyCodec:   info.CodecKey,
		TXTKeyCameras: strconv.Itoa(info.CameraCount),
		TXTKeyReady:   "0",
	}
	if info.Ready {
		txt[TXTKeyReady] = "1"
	}
	if info.SessionID != "" {
		txt[TXTKeySession] = info.SessionID
	}
	return txt
}

// DecodePanelTXT parses panel TXT records.
func DecodePanelTXT(txt TXTRecordMap) (*PanelInfo, error) {
	info := &PanelInfo{}

	var ok bool
	info.Name, ok = txt[TXTKeyName]
	if !ok || info.Name == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyName)
	}

	info.Version, ok = txt[TXTKeyVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}

	info.CodecKey, ok = txt[TXTKeyCodec]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyCodec)
	}

	if s, ok := txt[TXTKeyCameras]; ok {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: camera count %q", ErrInvalidTXTRecord, s)
		}
		info.CameraCount = n
	}

	info.SessionID = txt[TXTKeySession]
	info.Ready = txt[TXTKeyReady] == "1"
	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
// A bare key maps to the empty string.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		k, v, found := strings.Cut(s, "=")
		if !found && k == "" {
			continue
		}
		txt[k] = v
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInstanceName)
	}
	if len(name) > MaxInstanceNameLen {
		return fmt.Errorf("%w: %d bytes", ErrInvalidInstanceName, len(name))
	}
	return nil
}
