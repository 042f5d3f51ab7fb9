package log

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// EventTag is the CBOR tag number wrapping every event record. Its four
// bytes spell "plog", so each record in a log file starts with
// 0xda 'p' 'l' 'o' 'g'.
const EventTag uint64 = 0x706c6f67

var (
	// eventEncMode writes tagged events with RFC3339Nano timestamps and
	// canonical key order, so identical events encode to identical bytes.
	eventEncMode cbor.EncMode

	// eventDecMode refuses records without EventTag.
	eventDecMode cbor.DecMode
)

func init() {
	tags := cbor.NewTagSet()
	err := tags.Add(
		cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired},
		reflect.TypeOf(Event{}),
		EventTag,
	)
	if err != nil {
		panic(fmt.Sprintf("failed to register event tag: %v", err))
	}

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	if eventEncMode, err = encOpts.EncModeWithTags(tags); err != nil {
		panic(fmt.Sprintf("failed to create event encoder: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		// A preset name list is the largest container in an event.
		MaxArrayElements: 1024,
	}
	if eventDecMode, err = decOpts.DecModeWithTags(tags); err != nil {
		panic(fmt.Sprintf("failed to create event decoder: %v", err))
	}
}

// EncodeEvent encodes one tagged event record.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes one tagged event record.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}

// NewEncoder returns an encoder writing tagged event records to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return eventEncMode.NewEncoder(w)
}

// NewDecoder returns a decoder reading tagged event records from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDecMode.NewDecoder(r)
}
