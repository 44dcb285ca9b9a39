// Package sheetio reads and writes tables as delimited text and XLSX.
//
// The CSV dialect is deliberately lenient and not RFC 4180: fields are split
// on the comma with no escaping, so a comma inside a value cannot be told
// apart from a delimiter. The reader strips one layer of surrounding double
// quotes per field and collapses doubled quotes; the writer wraps every field
// in double quotes and doubles embedded quotes. The two sides are asymmetric
// but mutually compatible, so write-then-read round-trips.
package sheetio
