package persist

import (
	"fmt"

	"github.com/golang/snappy"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tailored-agentic-units/cdinventory/inventory"
)

// Wire layout, protobuf encoded then snappy compressed:
//
//	message Table  { repeated Record records = 1; }
//	message Record { sint64 id = 1; string title = 2; string artist = 3; }
const (
	fieldTableRecords protowire.Number = 1

	fieldRecordID     protowire.Number = 1
	fieldRecordTitle  protowire.Number = 2
	fieldRecordArtist protowire.Number = 3
)

// Encode serializes records into the file format.
func Encode(records []inventory.Record) []byte {
	var msg, rec []byte
	for _, r := range records {
		rec = rec[:0]
		rec = protowire.AppendTag(rec, fieldRecordID, protowire.VarintType)
		rec = protowire.AppendVarint(rec, protowire.EncodeZigZag(int64(r.ID)))
		rec = protowire.AppendTag(rec, fieldRecordTitle, protowire.BytesType)
		rec = protowire.AppendString(rec, r.Title)
		rec = protowire.AppendTag(rec, fieldRecordArtist, protowire.BytesType)
		rec = protowire.AppendString(rec, r.Artist)

		msg = protowire.AppendTag(msg, fieldTableRecords, protowire.BytesType)
		msg = protowire.AppendBytes(msg, rec)
	}
	return snappy.Encode(nil, msg)
}

// Decode parses data produced by Encode. Empty input decodes to no records.
func Decode(data []byte) ([]inventory.Record, error) {
	if len(data) == 0 {
		return nil, nil
	}

	msg, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}

	var records []inventory.Record
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return nil, fmt.Errorf("%w: table: %v", ErrDeserialization, protowire.ParseError(n))
		}
		msg = msg[n:]

		if num != fieldTableRecords {
			n = protowire.ConsumeFieldValue(num, typ, msg)
			if n < 0 {
				return nil, fmt.Errorf("%w: table field %d: %v", ErrDeserialization, num, protowire.ParseError(n))
			}
			msg = msg[n:]
			continue
		}

		if typ != protowire.BytesType {
			return nil, fmt.Errorf("%w: table field %d has wire type %d", ErrDeserialization, num, typ)
		}
		raw, n := protowire.ConsumeBytes(msg)
		if n < 0 {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDeserialization, len(records), protowire.ParseError(n))
		}
		msg = msg[n:]

		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDeserialization, len(records), err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func decodeRecord(b []byte) (inventory.Record, error) {
	var rec inventory.Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return rec, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == fieldRecordID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return rec, protowire.ParseError(n)
			}
			rec.ID = int(protowire.DecodeZigZag(v))
			b = b[n:]
		case (num == fieldRecordTitle || num == fieldRecordArtist) && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return rec, protowire.ParseError(n)
			}
			if num == fieldRecordTitle {
				rec.Title = s
			} else {
				rec.Artist = s
			}
			b = b[n:]
		case num == fieldRecordID || num == fieldRecordTitle || num == fieldRecordArtist:
			return rec, fmt.Errorf("field %d has wire type %d", num, typ)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return rec, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return rec, nil
}
