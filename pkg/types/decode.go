package types

import (
	"time"

	ghierrors "github.com/arthur-debert/ghi/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
)

// Decode converts a generic record (as produced by a JSON or YAML decoder)
// into out. Timestamps are RFC 3339 strings; numbers and booleans given as
// strings are converted.
func Decode(input, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return ghierrors.Wrap(err, ghierrors.ErrInternal, "failed to create record decoder")
	}
	if err := decoder.Decode(input); err != nil {
		return ghierrors.Wrap(err, ghierrors.ErrRecordDecode, "failed to decode record")
	}
	return nil
}

// DecodeAs decodes a single record into a T
func DecodeAs[T any](input interface{}) (T, error) {
	var out T
	err := Decode(input, &out)
	return out, err
}

// DecodeTimeline decodes a mixed list of comments and events. Entries that
// carry an "event" key are events.
func DecodeTimeline(items []interface{}) ([]TimelineEntry, error) {
	entries := make([]TimelineEntry, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, ghierrors.Newf(ghierrors.ErrRecordDecode, "timeline entry %d is not a mapping", i)
		}
		if _, isEvent := record["event"]; isEvent {
			event, err := DecodeAs[Event](record)
			if err != nil {
				return nil, err
			}
			entries = append(entries, TimelineEntry{Event: &event})
			continue
		}
		comment, err := DecodeAs[Comment](record)
		if err != nil {
			return nil, err
		}
		entries = append(entries, TimelineEntry{Comment: &comment})
	}
	return entries, nil
}
