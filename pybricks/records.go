package pybricks

import "unicode/utf8"

// CompanyID is the Pybricks Bluetooth SIG company identifier. Every
// broadcast packet we accept carries it little-endian right after the
// manufacturer-specific AD type byte.
const CompanyID uint16 = 0x0397

// AD types from the Core Specification Supplement, Part A.
const (
  adTypeShortenedLocalName byte = 0x08
  adTypeCompleteLocalName  byte = 0x09
  adTypeManufacturerData   byte = 0xFF
)

// FindVendorBlock walks the AD records of an advertisement payload and
// returns the offset of the company ID bytes inside the first
// manufacturer-specific record carrying the Pybricks company ID.
//
// Records are laid out as [length][type][data...], where length covers the
// type byte plus the data but not itself. A zero length byte ends the walk,
// and so does a record whose declared length overruns the payload -- the
// walk stops without reading past the buffer.
func FindVendorBlock(payload []byte) (int, bool) {
  i := 0

  for i < len(payload) {
    length := int(payload[i])

    if length == 0 {
      break // end of records
    }

    i += 1

    if i + length > len(payload) {
      break // malformed record
    }

    if payload[i] == adTypeManufacturerData {
      dataStart := i + 1

      // Verify the company ID (0x97 0x03 LE) before accepting the record.
      if length >= 3 && payload[dataStart] == 0x97 && payload[dataStart + 1] == 0x03 {
        return dataStart, true
      }
    }

    i += length
  }

  return 0, false
}

// FindLocalName walks the AD records looking for a Shortened (0x08) or
// Complete (0x09) Local Name record and returns its contents as a string.
// A name record holding invalid UTF-8 counts as no name at all.
//
// In practice only scan responses carry this record for the hubs we care
// about, but the walk itself does not care which packet type it came from.
func FindLocalName(payload []byte) (string, bool) {
  i := 0

  for i < len(payload) {
    length := int(payload[i])

    if length == 0 {
      break
    }

    i += 1

    if i + length > len(payload) {
      break
    }

    if t := payload[i]; t == adTypeShortenedLocalName || t == adTypeCompleteLocalName {
      name := payload[i + 1 : i + length]

      if !utf8.Valid(name) {
        return "", false
      }

      return string(name), true
    }

    i += length
  }

  return "", false
}
