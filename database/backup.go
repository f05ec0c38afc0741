package database

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

const blobField = "fileBlob"

// ExportData serializes every collection into one self-contained JSON
// document keyed by collection name. Binary attachment content is re-encoded
// as a data URI so the document stays plain text.
func (s *Store) ExportData(ctx context.Context) ([]byte, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}

	document := make(map[string][]map[string]interface{}, len(collections))
	for _, collection := range collections {
		raws, err := s.GetAll(ctx, collection)
		if err != nil {
			return nil, err
		}
		records := make([]map[string]interface{}, 0, len(raws))
		for _, raw := range raws {
			var record map[string]interface{}
			if err := json.Unmarshal(raw, &record); err != nil {
				return nil, errors.Wrapf(err, "failed to decode record from %s", collection)
			}
			if err := encodeBlobField(record); err != nil {
				return nil, errors.Wrapf(err, "failed to encode attachment in %s", collection)
			}
			records = append(records, record)
		}
		document[collection] = records
	}

	payload, err := json.Marshal(document)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize backup document")
	}
	return payload, nil
}

// ImportData destructively restores collections from a backup document: each
// known collection named in the document is cleared first, then its records
// are inserted with data-URI attachments decoded back to raw bytes. Unknown
// collection names are ignored. Restore is performed collection by
// collection; a failure partway through leaves already-processed collections
// restored and the failing one possibly empty, so callers should re-attempt
// from the original document rather than assume the store is unchanged.
func (s *Store) ImportData(ctx context.Context, data []byte) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	var document map[string]json.RawMessage
	if err := json.Unmarshal(data, &document); err != nil {
		return errors.Wrap(err, "failed to parse backup document")
	}

	// Fixed collection order keeps restores deterministic regardless of the
	// document's key order.
	for _, collection := range collections {
		raw, ok := document[collection]
		if !ok {
			continue
		}
		var records []map[string]interface{}
		if err := json.Unmarshal(raw, &records); err != nil {
			return errors.Wrapf(err, "failed to parse records for %s", collection)
		}

		if err := s.Clear(ctx, collection); err != nil {
			return err
		}
		for _, record := range records {
			if err := decodeBlobField(record); err != nil {
				return errors.Wrapf(err, "failed to decode attachment in %s", collection)
			}
			if err := s.Put(ctx, collection, record); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeBlobField rewrites a record's binary content as a data URI. Stored
// records hold attachment bytes as plain base64 (the JSON encoding of raw
// bytes); the exported form carries the MIME type inline.
func encodeBlobField(record map[string]interface{}) error {
	value, ok := record[blobField].(string)
	if !ok || value == "" || strings.HasPrefix(value, "data:") {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return errors.Wrap(err, "attachment content is not valid base64")
	}
	mime, _ := record["fileType"].(string)
	if mime == "" {
		mime = "application/octet-stream"
	}
	record[blobField] = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
	return nil
}

// decodeBlobField reverses encodeBlobField, restoring the stored base64 form
// from a data URI. Records without a data-URI blob pass through untouched.
func decodeBlobField(record map[string]interface{}) error {
	value, ok := record[blobField].(string)
	if !ok || !strings.HasPrefix(value, "data:") {
		return nil
	}
	comma := strings.IndexByte(value, ',')
	if comma < 0 {
		return errors.New("malformed data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(value[comma+1:])
	if err != nil {
		return errors.Wrap(err, "data URI payload is not valid base64")
	}
	record[blobField] = base64.StdEncoding.EncodeToString(raw)
	return nil
}
