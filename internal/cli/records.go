package cli

import (
	"os"

	"gopkg.in/yaml.v3"

	ghierrors "github.com/arthur-debert/ghi/pkg/errors"
	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/arthur-debert/ghi/pkg/spinner"
	"github.com/arthur-debert/ghi/pkg/types"
)

// readFile reads path with the spinner running
func (a *app) readFile(path string) ([]byte, error) {
	return spinner.Throb(a.spinner, 0, "", func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ghierrors.Wrapf(err, ghierrors.ErrRecordRead, "failed to read %s", path).
				WithDetail("path", path)
		}
		return data, nil
	})
}

// loadDocument parses a YAML or JSON record file into generic values
func (a *app) loadDocument(path string) (interface{}, error) {
	data, err := a.readFile(path)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ghierrors.Wrapf(err, ghierrors.ErrRecordDecode, "failed to parse %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("cli.records")
	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Record file loaded")
	return doc, nil
}

// loadMapping loads a file holding a single record
func (a *app) loadMapping(path string) (map[string]interface{}, error) {
	doc, err := a.loadDocument(path)
	if err != nil {
		return nil, err
	}
	record, ok := doc.(map[string]interface{})
	if !ok {
		return nil, ghierrors.Newf(ghierrors.ErrRecordDecode, MsgErrNotMapping, path).WithDetail("path", path)
	}
	return record, nil
}

// loadList loads a file holding a list of records. A mapping with the list
// under key is accepted too; the mapping is returned alongside. An empty file
// is an empty list.
func (a *app) loadList(path, key string) ([]interface{}, map[string]interface{}, error) {
	doc, err := a.loadDocument(path)
	if err != nil {
		return nil, nil, err
	}

	switch v := doc.(type) {
	case []interface{}:
		return v, nil, nil
	case map[string]interface{}:
		value, present := v[key]
		if items, ok := value.([]interface{}); ok {
			return items, v, nil
		}
		if present && value == nil {
			return nil, v, nil
		}
	case nil:
		return nil, nil, nil
	}
	return nil, nil, ghierrors.Newf(ghierrors.ErrRecordDecode, MsgErrNotList, path).WithDetail("path", path)
}

// loadRecords decodes a list file into records
func loadRecords[T any](a *app, path, key string) ([]T, map[string]interface{}, error) {
	items, wrapper, err := a.loadList(path, key)
	if err != nil {
		return nil, nil, err
	}
	records := make([]T, 0, len(items))
	for i, item := range items {
		record, err := types.DecodeAs[T](item)
		if err != nil {
			return nil, nil, ghierrors.Wrapf(err, ghierrors.ErrRecordDecode, "record %d of %s", i, path).
				WithDetail("path", path)
		}
		records = append(records, record)
	}
	return records, wrapper, nil
}

// loadRecord decodes a single record file
func loadRecord[T any](a *app, path string) (*T, map[string]interface{}, error) {
	m, err := a.loadMapping(path)
	if err != nil {
		return nil, nil, err
	}
	record, err := types.DecodeAs[T](m)
	if err != nil {
		return nil, nil, ghierrors.Wrapf(err, ghierrors.ErrRecordDecode, "failed to decode %s", path).
			WithDetail("path", path)
	}
	return &record, m, nil
}

// loadTimeline decodes a list of comments and events
func (a *app) loadTimeline(path string) ([]types.TimelineEntry, error) {
	items, _, err := a.loadList(path, "timeline")
	if err != nil {
		return nil, err
	}
	return types.DecodeTimeline(items)
}
