// Package transcript turns the raw log captured by the logging shell into the
// clean output.txt committed alongside each chapter.
package transcript
