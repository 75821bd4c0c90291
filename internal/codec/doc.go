// Package codec converts contact collections to and from export files.
//
// Supported formats are CSV and JSON, plus XLSX spreadsheets. CSV and XLSX
// carry the columns Name, Email, Phone, Address and Tags (";"-joined); JSON
// carries full records including id and timestamps. Imports that cannot be
// decoded fail with an error wrapping common.ErrParse and never return a
// partial collection.
package codec
