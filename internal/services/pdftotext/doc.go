// Package pdftotext wraps the poppler pdftotext binary, which renders an
// inclusive page range of a PDF document to a plain-text file.
package pdftotext
