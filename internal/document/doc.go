// Package document inspects the reference PDF. It only reads structural
// metadata (the page count); text extraction is delegated to pdftotext.
package document
