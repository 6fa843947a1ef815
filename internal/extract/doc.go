// Package extract maintains the extracted-text cache for each chapter. Text
// is pulled from the reference document once; a non-empty chapter.txt is
// never regenerated, and a wrong page range is left for the user to fix in
// the chapter registry.
package extract
